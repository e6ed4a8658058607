package register

import (
	"errors"

	"github.com/ezrec/mcugears/translate"
)

var f = translate.From

var (
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrRegisterKind  = errors.New(f("register kind unknown"))
	ErrPrescalerZero = errors.New(f("timer prescaler zero"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrOperation     = errors.New(f("operation unknown"))
	ErrChange        = errors.New(f("pointer change unknown"))
)

// ErrSelector identifies the selector an error was raised for.
type ErrSelector struct {
	Selector string
	Err      error
}

func (err *ErrSelector) Error() string {
	return f("%v: %v", err.Selector, err.Err)
}

func (err *ErrSelector) Unwrap() error {
	return err.Err
}
