// Package instruction defines a single decoded instruction of a simulated
// microcontroller, and the execution cycle shared by every instruction set.
package instruction

import (
	"github.com/ezrec/mcugears/register"
)

// Instruction is one pre-decoded instruction.
type Instruction[S register.Status] interface {
	// Run computes the effect of the instruction against the register bank,
	// applying any register mutations directly. The default program
	// counter advance and the timer update are left to RunCycle through
	// the returned Result. An instruction that needs to see its own jump
	// target writes the program counter itself and returns PcJumped().
	Run(bank *register.Bank[S]) (result Result, err error)
	// IsSideEffect reports whether the instruction touches state outside
	// the register bank, such as the data space or peripherals.
	IsSideEffect() bool
}

const (
	EMPTY_TRACE = "[EMPTY]: This is empty address for instructions longer than the base instruction length"
	NOP_TRACE   = "[NOP]: Single cycle no operation"
)

// RunCycle runs an instruction, then applies its clocks to the timers and
// its directive to the program counter. It returns the trace.
func RunCycle[S register.Status](inst Instruction[S], bank *register.Bank[S]) (trace string, err error) {
	result, err := inst.Run(bank)
	if err != nil {
		return
	}

	err = bank.UpdateTimer(result.Clocks)
	if err != nil {
		return
	}

	err = bank.UpdateProgramCounter(result.Change)
	if err != nil {
		return
	}

	trace = result.Trace
	return
}

// EmptyOperation is the result of the placeholder slots that follow a
// multi-word instruction in an instruction sequence. An N-word
// instruction occupies N slots: the instruction itself, then N-1 empty
// operations, so that sequence indices match program addresses.
func EmptyOperation() Result {
	return NewResult(EMPTY_TRACE, 0, register.PcDefault())
}

// Nop is the result of a single cycle no operation.
func Nop() Result {
	return NewResult(NOP_TRACE, 1, register.PcDefault())
}
