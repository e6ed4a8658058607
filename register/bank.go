// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package register

import (
	"log"
)

// Bank is the register bank of a simulated processor: a Layout plus the
// state and behaviour shared by every microcontroller family.
type Bank[S Status] struct {
	Verbose bool      // Set to enable verbose logging.
	Layout  Layout[S] // Concrete register storage.

	interval []Value // Prescaler remainder per timer channel.
}

// NewBank creates a register bank over a layout.
func NewBank[S Status](layout Layout[S]) (bank *Bank[S]) {
	bank = &Bank[S]{
		Layout:   layout,
		interval: make([]Value, layout.Timers()),
	}

	return
}

// ReadFrom returns the value of a register.
func (bank *Bank[S]) ReadFrom(sel Selector[S]) (value Value, err error) {
	return bank.Layout.ReadFrom(sel)
}

// WriteTo stores a value, truncated to the backing width, into a register.
func (bank *Bank[S]) WriteTo(sel Selector[S], value Value) (err error) {
	if bank.Verbose {
		log.Printf("register: %v <- %d", sel, value)
	}

	return bank.Layout.WriteTo(sel, value)
}

// ReadProgramCounter returns the program counter.
func (bank *Bank[S]) ReadProgramCounter() (Value, error) {
	return bank.ReadFrom(ProgramCounter[S]())
}

// ReadStackPointer returns the stack pointer.
func (bank *Bank[S]) ReadStackPointer() (Value, error) {
	return bank.ReadFrom(StackPointer[S]())
}

// Modify replaces the value of sel with fn(current, value).
func (bank *Bank[S]) Modify(sel Selector[S], value Value, fn func(a, b Value) Value) (err error) {
	current, err := bank.ReadFrom(sel)
	if err != nil {
		return
	}

	err = bank.WriteTo(sel, fn(current, value))
	return
}

func wrappingAdd(a, b Value) Value { return a + b }
func wrappingSub(a, b Value) Value { return a - b }
func wrappingMul(a, b Value) Value { return a * b }

// AddTo adds value to a register, wrapping at its backing width.
func (bank *Bank[S]) AddTo(sel Selector[S], value Value) error {
	return bank.Modify(sel, value, wrappingAdd)
}

// SubFrom subtracts value from a register, wrapping at its backing width.
func (bank *Bank[S]) SubFrom(sel Selector[S], value Value) error {
	return bank.Modify(sel, value, wrappingSub)
}

// MulTo multiplies a register by value, wrapping at its backing width.
func (bank *Bank[S]) MulTo(sel Selector[S], value Value) error {
	return bank.Modify(sel, value, wrappingMul)
}

// DivFrom divides a register by value.
func (bank *Bank[S]) DivFrom(sel Selector[S], value Value) error {
	if value == 0 {
		return &ErrSelector{Selector: sel.String(), Err: ErrDivideByZero}
	}

	return bank.Modify(sel, value, func(a, b Value) Value { return a / b })
}

// Execute applies a single register operation.
func (bank *Bank[S]) Execute(op Operation[S]) (err error) {
	switch op.Op {
	case OP_NOOP:
		// pass
	case OP_WRITE:
		err = bank.WriteTo(op.Selector, op.Value)
	case OP_ADD:
		err = bank.AddTo(op.Selector, op.Value)
	default:
		err = ErrOperation
	}

	return
}

// ExecuteBatch applies operations in order.
// The batch is not atomic: operations before a failing one stay applied.
func (bank *Bank[S]) ExecuteBatch(ops ...Operation[S]) (err error) {
	for n, op := range ops {
		err = bank.Execute(op)
		if err != nil {
			if bank.Verbose {
				log.Printf("register: batch stopped at %d of %d: %v", n, len(ops), err)
			}
			return
		}
	}

	return
}

// programCounterOperation translates a directive into a register operation.
func programCounterOperation[S Status](change ProgramCounterChange) (op Operation[S], err error) {
	pc := ProgramCounter[S]()

	switch change.Kind {
	case CHANGE_DEFAULT:
		op = Add(pc, 1)
	case CHANGE_RELATIVE:
		// Two's complement add; the layout truncates to the PC width.
		op = Add(pc, Value(change.Offset))
	case CHANGE_ABSOLUTE:
		op = Write(pc, change.Address)
	case CHANGE_JUMPED:
		op = NoOp[S]()
	default:
		err = &ErrSelector{Selector: pc.String(), Err: ErrChange}
	}

	return
}

// UpdateProgramCounter applies a program counter directive.
func (bank *Bank[S]) UpdateProgramCounter(change ProgramCounterChange) (err error) {
	op, err := programCounterOperation[S](change)
	if err != nil {
		return
	}

	err = bank.Execute(op)
	return
}

// UpdateStackPointer applies a stack pointer update.
func (bank *Bank[S]) UpdateStackPointer(change StackPointerChange) (err error) {
	sp := StackPointer[S]()

	var op Operation[S]
	switch change.Kind {
	case CHANGE_INCREMENT:
		op = Add(sp, 1)
	case CHANGE_DECREMENT:
		op = Add(sp, ^Value(0))
	case CHANGE_RELATIVE:
		op = Add(sp, Value(change.Offset))
	case CHANGE_ABSOLUTE:
		op = Write(sp, change.Address)
	default:
		err = &ErrSelector{Selector: sp.String(), Err: ErrChange}
		return
	}

	err = bank.Execute(op)
	return
}

// UpdateTimer advances every timer channel by clocks processor cycles.
//
// For each channel the cycles are added to the prescaler remainder; the
// timer counter advances by the number of whole prescaler periods and the
// rest is kept for the next update.
func (bank *Bank[S]) UpdateTimer(clocks Value) (err error) {
	for id := range bank.interval {
		prescaler := bank.Layout.Prescaler(id)
		if prescaler == 0 {
			err = &ErrSelector{Selector: Timer[S](id).String(), Err: ErrPrescalerZero}
			return
		}

		elapsed := bank.interval[id] + clocks
		ticks := elapsed / prescaler
		if ticks != 0 {
			err = bank.AddTo(Timer[S](id), ticks)
			if err != nil {
				return
			}
		}
		bank.interval[id] = elapsed % prescaler
	}

	return
}

// Interval returns the prescaler remainder of a timer channel.
func (bank *Bank[S]) Interval(timer int) (value Value, err error) {
	if timer < 0 || timer >= len(bank.interval) {
		err = Timer[S](timer).RangeError()
		return
	}

	value = bank.interval[timer]
	return
}

// Reset clears the prescaler remainders.
func (bank *Bank[S]) Reset() {
	clear(bank.interval)
}
