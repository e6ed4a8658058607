package emulator

import (
	"errors"

	"github.com/ezrec/mcugears/translate"
)

var f = translate.From

var (
	ErrProgramMissing = errors.New(f("program missing"))
	ErrProgramSize    = errors.New(f("program exceeds flash size"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %#04x line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
