package register

import (
	"fmt"
)

// OperationKind is the type of a register operation.
type OperationKind int

const (
	OP_NOOP  = OperationKind(0) // noop
	OP_WRITE = OperationKind(1) // write
	OP_ADD   = OperationKind(2) // add
)

func (op OperationKind) String() string {
	switch op {
	case OP_NOOP:
		return "noop"
	case OP_WRITE:
		return "write"
	case OP_ADD:
		return "add"
	}
	return fmt.Sprintf("OperationKind(%d)", int(op))
}

// Operation is a single declarative register mutation.
// OP_ADD always wraps at the backing width of the selector.
type Operation[S Status] struct {
	Op       OperationKind
	Selector Selector[S]
	Value    Value
}

// Write stores value at sel.
func Write[S Status](sel Selector[S], value Value) Operation[S] {
	return Operation[S]{Op: OP_WRITE, Selector: sel, Value: value}
}

// Add adds value to sel, wrapping.
func Add[S Status](sel Selector[S], value Value) Operation[S] {
	return Operation[S]{Op: OP_ADD, Selector: sel, Value: value}
}

// NoOp changes nothing.
func NoOp[S Status]() Operation[S] {
	return Operation[S]{Op: OP_NOOP}
}

func (op Operation[S]) String() string {
	switch op.Op {
	case OP_WRITE:
		return fmt.Sprintf("write %v %d", op.Selector, op.Value)
	case OP_ADD:
		return fmt.Sprintf("add %v %d", op.Selector, op.Value)
	}
	return op.Op.String()
}
