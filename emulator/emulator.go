// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/mcugears/avr"
	"github.com/ezrec/mcugears/dataspace"
	"github.com/ezrec/mcugears/internal"
	"github.com/ezrec/mcugears/mcu"
)

const (
	FLASH_SIZE = 0x10000 // Program words addressable by the 16-bit PC.
)

var _emulator_defines = map[string]string{
	"FLASH_SIZE": fmt.Sprintf("0x%x", FLASH_SIZE),
}

// Emulator state. Register file + RAM + execution engine.
//
// Registers and Bank are views of the bank the engine owns. Read them
// between steps; writing them while a Run iterator is live is undefined.
// Reset rebuilds the engine and rewrites them in place.
type Emulator struct {
	Verbose   bool                                  // If set, enables verbose logging.
	Registers *avr.Registers                        // Register file.
	Bank      *avr.Bank                             // Register bank over Registers.
	Ram       *dataspace.Ram                        // Data space for the stack.
	Mcu       *mcu.Mcu[avr.Status, avr.Instruction] // Execution engine.
	Program   *avr.Program                          // Currently loaded program listing.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator, err error) {
	ram, err := dataspace.NewRam(avr.RAMSTART, avr.RAMEND)
	if err != nil {
		return
	}

	bank, regs := avr.NewBank(avr.RAMEND)

	emu = &Emulator{
		Registers: regs,
		Bank:      bank,
		Ram:       ram,
		Program:   &avr.Program{},
	}
	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		avr.Defines(),
		emu.Ram.Defines(),
	)
}

// Load replaces the program, and resets the emulator.
func (emu *Emulator) Load(prog *avr.Program) (err error) {
	if prog == nil {
		err = ErrProgramMissing
		return
	}

	if prog.Len() > FLASH_SIZE {
		err = ErrProgramSize
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Reset the registers and RAM, and rebuild the engine over the program.
func (emu *Emulator) Reset() {
	*emu.Registers = *avr.NewRegisters(uint16(emu.Ram.End))
	emu.Bank.Reset()
	emu.Ram.Reset()

	emu.Bank.Verbose = emu.Verbose
	emu.Ram.Verbose = emu.Verbose

	emu.Mcu = mcu.NewMcu(emu.Bank, emu.Program.Instructions(emu.Ram))
	emu.Mcu.Verbose = emu.Verbose
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Registers.Pc)
}

// Steps returns the number of instructions executed since a reset.
func (emu *Emulator) Steps() int {
	return emu.Mcu.Steps
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Registers.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// finished reports whether err is the fetch past the last instruction.
func (emu *Emulator) finished(err error) bool {
	return errors.Is(err, mcu.ErrProgramCounterRange) && emu.Pc() == emu.Mcu.Len()
}

// runtime wraps err with the location of the current instruction.
func (emu *Emulator) runtime(pc, lineno int, err error) error {
	return &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
}

// Tick performs a single instruction of the emulator, through the lane it
// belongs to.
func (emu *Emulator) Tick() (trace string, done bool, err error) {
	pc, lineno := emu.Pc(), emu.LineNo()

	trace, err = emu.Mcu.Step()
	if emu.finished(err) {
		err = nil
		done = true
		return
	}
	if err != nil {
		err = emu.runtime(pc, lineno, err)
		return
	}

	return
}

// Run executes up to limit instructions. It drains the pure lane, then
// performs a single side-effecting step, and repeats until the program
// runs off its end, an error occurs, or the limit is reached.
func (emu *Emulator) Run(limit int) iter.Seq2[string, error] {
	return func(yield func(trace string, err error) bool) {
		steps := 0
		for steps < limit {
			pc, lineno := emu.Pc(), emu.LineNo()
			for trace, err := range emu.Mcu.Pure() {
				if emu.finished(err) {
					return
				}
				if err != nil {
					yield(trace, emu.runtime(pc, lineno, err))
					return
				}
				steps++
				if !yield(trace, nil) {
					return
				}
				if steps >= limit {
					return
				}
				pc, lineno = emu.Pc(), emu.LineNo()
			}

			trace, ok, err := emu.Mcu.StepSideEffect()
			if emu.finished(err) {
				return
			}
			if err != nil {
				yield(trace, emu.runtime(pc, lineno, err))
				return
			}
			if !ok {
				return
			}
			steps++
			if !yield(trace, nil) {
				return
			}
		}
	}
}
