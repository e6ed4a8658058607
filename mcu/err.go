package mcu

import (
	"errors"

	"github.com/ezrec/mcugears/translate"
)

var f = translate.From

var (
	ErrProgramCounterRange = errors.New(f("program counter out of range"))
)

// ErrFetch identifies the program counter that could not be fetched.
type ErrFetch struct {
	Pc  uint64
	Len int
	Err error
}

func (err *ErrFetch) Error() string {
	return f("pc %#04x (of %d instructions): %v", err.Pc, err.Len, err.Err)
}

func (err *ErrFetch) Unwrap() error {
	return err.Err
}
