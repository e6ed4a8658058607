package register

import (
	"fmt"

	"github.com/ezrec/mcugears/bitop"
)

// Value is the engine wide register value.
// Backing storage may be narrower; see Layout.
type Value = bitop.Value

// Status is the constraint on the status register taxonomy of a
// microcontroller family.
type Status interface {
	comparable
	fmt.Stringer
}

// Kind is the register class addressed by a Selector.
type Kind int

const (
	KIND_GENERAL         = Kind(0) // general
	KIND_TIMER           = Kind(1) // timer
	KIND_PROGRAM_COUNTER = Kind(2) // pc
	KIND_STACK_POINTER   = Kind(3) // sp
	KIND_STATUS          = Kind(4) // status
	KIND_IO              = Kind(5) // io
)

func (kind Kind) String() string {
	switch kind {
	case KIND_GENERAL:
		return "general"
	case KIND_TIMER:
		return "timer"
	case KIND_PROGRAM_COUNTER:
		return "pc"
	case KIND_STACK_POINTER:
		return "sp"
	case KIND_STATUS:
		return "status"
	case KIND_IO:
		return "io"
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

// Selector addresses a single register, or one slot of a register array.
// Selectors carry no value.
type Selector[S Status] struct {
	Kind Kind
	Id   int // Register index for general, timer, io and status.
	Name S   // Status register name, only for KIND_STATUS.
}

// General selects general purpose register id.
func General[S Status](id int) Selector[S] {
	return Selector[S]{Kind: KIND_GENERAL, Id: id}
}

// Timer selects the counter of timer channel id.
func Timer[S Status](id int) Selector[S] {
	return Selector[S]{Kind: KIND_TIMER, Id: id}
}

// ProgramCounter selects the program counter.
func ProgramCounter[S Status]() Selector[S] {
	return Selector[S]{Kind: KIND_PROGRAM_COUNTER}
}

// StackPointer selects the stack pointer.
func StackPointer[S Status]() Selector[S] {
	return Selector[S]{Kind: KIND_STACK_POINTER}
}

// StatusOf selects slot index of the status register name.
func StatusOf[S Status](name S, index int) Selector[S] {
	return Selector[S]{Kind: KIND_STATUS, Id: index, Name: name}
}

// Io selects I/O register id.
func Io[S Status](id int) Selector[S] {
	return Selector[S]{Kind: KIND_IO, Id: id}
}

// String returns the assembly style name of the selector.
func (sel Selector[S]) String() string {
	switch sel.Kind {
	case KIND_GENERAL:
		return fmt.Sprintf("r%d", sel.Id)
	case KIND_TIMER:
		return fmt.Sprintf("timer%d", sel.Id)
	case KIND_PROGRAM_COUNTER:
		return "pc"
	case KIND_STACK_POINTER:
		return "sp"
	case KIND_STATUS:
		return fmt.Sprintf("%v[%d]", sel.Name, sel.Id)
	case KIND_IO:
		return fmt.Sprintf("io%d", sel.Id)
	}
	return sel.Kind.String()
}

// RangeError returns the error for a selector that is not backed by the
// layout.
func (sel Selector[S]) RangeError() error {
	return &ErrSelector{Selector: sel.String(), Err: ErrRegisterRange}
}
