package dataspace

import (
	"errors"

	"github.com/ezrec/mcugears/translate"
)

var f = translate.From

var (
	ErrAddressRange = errors.New(f("address out of range"))
	ErrBounds       = errors.New(f("start address after end address"))
)

// ErrAddress identifies the address an error was raised for.
type ErrAddress struct {
	Address Address
	Err     error
}

func (err *ErrAddress) Error() string {
	return f("address 0x%04x %v", uint32(err.Address), err.Err)
}

func (err *ErrAddress) Unwrap() error {
	return err.Err
}
