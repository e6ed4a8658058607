package mcu

import (
	"iter"
	"log"
	"slices"

	"github.com/ezrec/mcugears/instruction"
	"github.com/ezrec/mcugears/register"
)

// Mcu is the execution engine. S is the status taxonomy of the family,
// and I its instruction type.
//
// The engine owns its register bank for as long as it runs. Callers may
// read Registers between steps, but must not write it while a Pure or
// SideEffect iterator is live.
type Mcu[S register.Status, I instruction.Instruction[S]] struct {
	Verbose   bool              // If set, logs every executed trace.
	Registers *register.Bank[S] // Register bank, owned by the engine.
	Steps     int               // Instructions executed since creation.

	instructions []I // Instruction sequence, indexed by PC.
}

// NewMcu creates an engine over a register bank and a copy of an
// instruction sequence.
func NewMcu[S register.Status, I instruction.Instruction[S]](bank *register.Bank[S], instructions []I) (mcu *Mcu[S, I]) {
	mcu = &Mcu[S, I]{
		Registers:    bank,
		instructions: slices.Clone(instructions),
	}

	return
}

// Fetch returns the instruction at the current program counter.
func (mcu *Mcu[S, I]) Fetch() (inst I, err error) {
	pc, err := mcu.Registers.ReadProgramCounter()
	if err != nil {
		return
	}

	if pc >= uint64(len(mcu.instructions)) {
		err = &ErrFetch{Pc: pc, Len: len(mcu.instructions), Err: ErrProgramCounterRange}
		return
	}

	inst = mcu.instructions[pc]
	return
}

// Len returns the length of the instruction sequence.
func (mcu *Mcu[S, I]) Len() int {
	return len(mcu.instructions)
}

// step executes the current instruction if its classification matches
// sideEffect. When it does not, ok is false and no state changes.
func (mcu *Mcu[S, I]) step(sideEffect bool) (trace string, ok bool, err error) {
	inst, err := mcu.Fetch()
	if err != nil {
		return
	}

	if inst.IsSideEffect() != sideEffect {
		return
	}

	ok = true
	trace, err = instruction.RunCycle[S](inst, mcu.Registers)
	if err != nil {
		return
	}

	mcu.Steps++
	if mcu.Verbose {
		log.Printf("%v", trace)
	}

	return
}

// StepPure executes the current instruction if it is pure.
func (mcu *Mcu[S, I]) StepPure() (trace string, ok bool, err error) {
	return mcu.step(false)
}

// StepSideEffect executes the current instruction if it is side-effecting.
func (mcu *Mcu[S, I]) StepSideEffect() (trace string, ok bool, err error) {
	return mcu.step(true)
}

// Step executes the current instruction through whichever lane it
// belongs to.
func (mcu *Mcu[S, I]) Step() (trace string, err error) {
	inst, err := mcu.Fetch()
	if err != nil {
		return
	}

	trace, _, err = mcu.step(inst.IsSideEffect())
	return
}

// lane iterates a step function until it declines, or after yielding an
// error.
func lane(step func() (string, bool, error)) iter.Seq2[string, error] {
	return func(yield func(trace string, err error) bool) {
		for {
			trace, ok, err := step()
			if err != nil {
				yield(trace, err)
				return
			}
			if !ok {
				return
			}
			if !yield(trace, nil) {
				return
			}
		}
	}
}

// Pure returns the lazy lane of pure steps. It stops at the first
// side-effecting instruction.
func (mcu *Mcu[S, I]) Pure() iter.Seq2[string, error] {
	return lane(mcu.StepPure)
}

// SideEffect returns the lazy lane of side-effecting steps. It stops at
// the first pure instruction.
func (mcu *Mcu[S, I]) SideEffect() iter.Seq2[string, error] {
	return lane(mcu.StepSideEffect)
}
