package avr

import (
	"iter"

	"github.com/ezrec/mcugears/dataspace"
)

// Opcode is one assembled source line and the program words it produced.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []Instruction // Instruction, then its EMPTY padding.
	LinkLabel string
}

// Program is an assembled program.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug locates the source line of a program address.
func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) >= op.Ip && int(ip) < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip) - op.Ip,
			}
			break
		}
	}

	return
}

// Codes iterates over the program words by address.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, code Instruction) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Ip+n, code) {
					return
				}
			}
		}
	}
}

// Len returns the number of program words.
func (prog *Program) Len() (count int) {
	for _, op := range prog.Opcodes {
		count += len(op.Codes)
	}
	return
}

// Instructions returns the instruction sequence of the program, with the
// side-effecting instructions bound to data.
func (prog *Program) Instructions(data dataspace.DataSpace) (insts []Instruction) {
	insts = make([]Instruction, 0, prog.Len())
	for _, code := range prog.Codes() {
		if code.IsSideEffect() {
			code.Data = data
		}
		insts = append(insts, code)
	}

	return
}
