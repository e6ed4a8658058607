package register

import (
	"fmt"
)

// ChangeKind is the kind of a pointer register update.
type ChangeKind int

const (
	CHANGE_DEFAULT   = ChangeKind(0) // default
	CHANGE_ABSOLUTE  = ChangeKind(1) // absolute
	CHANGE_RELATIVE  = ChangeKind(2) // relative
	CHANGE_JUMPED    = ChangeKind(3) // jumped
	CHANGE_INCREMENT = ChangeKind(4) // increment
	CHANGE_DECREMENT = ChangeKind(5) // decrement
)

func (kind ChangeKind) String() string {
	switch kind {
	case CHANGE_DEFAULT:
		return "default"
	case CHANGE_ABSOLUTE:
		return "absolute"
	case CHANGE_RELATIVE:
		return "relative"
	case CHANGE_JUMPED:
		return "jumped"
	case CHANGE_INCREMENT:
		return "increment"
	case CHANGE_DECREMENT:
		return "decrement"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(kind))
}

// ProgramCounterChange is the directive an instruction returns to tell the
// engine how to advance the program counter.
type ProgramCounterChange struct {
	Kind    ChangeKind
	Address Value // CHANGE_ABSOLUTE target.
	Offset  int64 // CHANGE_RELATIVE signed delta.
}

// PcDefault advances the program counter by one.
func PcDefault() ProgramCounterChange {
	return ProgramCounterChange{Kind: CHANGE_DEFAULT}
}

// PcAbsolute moves the program counter to address.
func PcAbsolute(address Value) ProgramCounterChange {
	return ProgramCounterChange{Kind: CHANGE_ABSOLUTE, Address: address}
}

// PcRelative adds the signed offset to the program counter.
func PcRelative(offset int64) ProgramCounterChange {
	return ProgramCounterChange{Kind: CHANGE_RELATIVE, Offset: offset}
}

// PcJumped leaves the program counter as the instruction set it.
func PcJumped() ProgramCounterChange {
	return ProgramCounterChange{Kind: CHANGE_JUMPED}
}

func (change ProgramCounterChange) String() string {
	switch change.Kind {
	case CHANGE_ABSOLUTE:
		return fmt.Sprintf("absolute(%d)", change.Address)
	case CHANGE_RELATIVE:
		return fmt.Sprintf("relative(%+d)", change.Offset)
	}
	return change.Kind.String()
}

// StackPointerChange is an update of the stack pointer.
type StackPointerChange struct {
	Kind    ChangeKind
	Address Value
	Offset  int64
}

// SpIncrement adds one to the stack pointer.
func SpIncrement() StackPointerChange {
	return StackPointerChange{Kind: CHANGE_INCREMENT}
}

// SpDecrement subtracts one from the stack pointer.
func SpDecrement() StackPointerChange {
	return StackPointerChange{Kind: CHANGE_DECREMENT}
}

// SpRelative adds the signed offset to the stack pointer.
func SpRelative(offset int64) StackPointerChange {
	return StackPointerChange{Kind: CHANGE_RELATIVE, Offset: offset}
}

// SpAbsolute sets the stack pointer to address.
func SpAbsolute(address Value) StackPointerChange {
	return StackPointerChange{Kind: CHANGE_ABSOLUTE, Address: address}
}
