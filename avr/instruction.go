package avr

import (
	"fmt"

	"github.com/ezrec/mcugears/bitop"
	"github.com/ezrec/mcugears/dataspace"
	"github.com/ezrec/mcugears/instruction"
	"github.com/ezrec/mcugears/register"
)

// Op is an instruction mnemonic.
type Op int

const (
	OP_NOP   = Op(0)  // nop
	OP_EMPTY = Op(1)  // empty
	OP_LDI   = Op(2)  // ldi
	OP_MOV   = Op(3)  // mov
	OP_ADD   = Op(4)  // add
	OP_SUB   = Op(5)  // sub
	OP_JMP   = Op(6)  // jmp
	OP_RJMP  = Op(7)  // rjmp
	OP_CALL  = Op(8)  // call
	OP_RET   = Op(9)  // ret
	OP_PUSH  = Op(10) // push
	OP_POP   = Op(11) // pop
	OP_IN    = Op(12) // in
	OP_OUT   = Op(13) // out
)

var _op_names = [...]string{
	OP_NOP:   "nop",
	OP_EMPTY: "empty",
	OP_LDI:   "ldi",
	OP_MOV:   "mov",
	OP_ADD:   "add",
	OP_SUB:   "sub",
	OP_JMP:   "jmp",
	OP_RJMP:  "rjmp",
	OP_CALL:  "call",
	OP_RET:   "ret",
	OP_PUSH:  "push",
	OP_POP:   "pop",
	OP_IN:    "in",
	OP_OUT:   "out",
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(_op_names) {
		return _op_names[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Words returns the number of program words the instruction occupies.
func (op Op) Words() int {
	switch op {
	case OP_JMP, OP_CALL:
		return 2
	}
	return 1
}

// Instruction is a decoded instruction of the family.
type Instruction struct {
	Op     Op
	Rd     int            // Destination register.
	Rr     int            // Source register.
	K      register.Value // Immediate, absolute address, or I/O address.
	Offset int64          // Relative jump offset.

	Data dataspace.DataSpace // Data space for PUSH, POP, CALL and RET.
}

var _ instruction.Instruction[Status] = Instruction{}

// Nop does nothing for one cycle.
func Nop() Instruction {
	return Instruction{Op: OP_NOP}
}

// Empty is the placeholder slot after a two word instruction.
func Empty() Instruction {
	return Instruction{Op: OP_EMPTY}
}

// Ldi loads the immediate k into rd.
func Ldi(rd int, k uint8) Instruction {
	return Instruction{Op: OP_LDI, Rd: rd, K: register.Value(k)}
}

// Mov copies rr into rd.
func Mov(rd, rr int) Instruction {
	return Instruction{Op: OP_MOV, Rd: rd, Rr: rr}
}

// Add adds rr to rd and updates SREG.
func Add(rd, rr int) Instruction {
	return Instruction{Op: OP_ADD, Rd: rd, Rr: rr}
}

// Sub subtracts rr from rd and updates SREG.
func Sub(rd, rr int) Instruction {
	return Instruction{Op: OP_SUB, Rd: rd, Rr: rr}
}

// Jmp jumps to the absolute program address k.
func Jmp(k uint16) Instruction {
	return Instruction{Op: OP_JMP, K: register.Value(k)}
}

// Rjmp jumps to PC + k + 1.
func Rjmp(k int64) Instruction {
	return Instruction{Op: OP_RJMP, Offset: k}
}

// In reads I/O register a into rd.
func In(rd int, a uint8) Instruction {
	return Instruction{Op: OP_IN, Rd: rd, K: register.Value(a)}
}

// Out writes rr to I/O register a.
func Out(a uint8, rr int) Instruction {
	return Instruction{Op: OP_OUT, Rr: rr, K: register.Value(a)}
}

// Call pushes the return address on the data space stack and jumps to k.
func Call(data dataspace.DataSpace, k uint16) Instruction {
	return Instruction{Op: OP_CALL, K: register.Value(k), Data: data}
}

// Ret pops the return address from the data space stack.
func Ret(data dataspace.DataSpace) Instruction {
	return Instruction{Op: OP_RET, Data: data}
}

// Push stores rr at SP, then decrements SP.
func Push(data dataspace.DataSpace, rr int) Instruction {
	return Instruction{Op: OP_PUSH, Rr: rr, Data: data}
}

// Pop increments SP, then loads rd from SP.
func Pop(data dataspace.DataSpace, rd int) Instruction {
	return Instruction{Op: OP_POP, Rd: rd, Data: data}
}

// Padded returns the instruction followed by the EMPTY slots of its extra
// words.
func (inst Instruction) Padded() (insts []Instruction) {
	insts = append(insts, inst)
	for range inst.Op.Words() - 1 {
		insts = append(insts, Empty())
	}
	return
}

// String returns the assembly text of the instruction.
func (inst Instruction) String() string {
	switch inst.Op {
	case OP_LDI:
		return fmt.Sprintf("ldi r%d, %d", inst.Rd, inst.K)
	case OP_MOV, OP_ADD, OP_SUB:
		return fmt.Sprintf("%v r%d, r%d", inst.Op, inst.Rd, inst.Rr)
	case OP_JMP, OP_CALL:
		return fmt.Sprintf("%v %d", inst.Op, inst.K)
	case OP_RJMP:
		return fmt.Sprintf("rjmp %+d", inst.Offset)
	case OP_PUSH:
		return fmt.Sprintf("push r%d", inst.Rr)
	case OP_POP:
		return fmt.Sprintf("pop r%d", inst.Rd)
	case OP_IN:
		return fmt.Sprintf("in r%d, %d", inst.Rd, inst.K)
	case OP_OUT:
		return fmt.Sprintf("out %d, r%d", inst.K, inst.Rr)
	}
	return inst.Op.String()
}

// IsSideEffect reports whether the instruction touches the data space or
// I/O.
func (inst Instruction) IsSideEffect() bool {
	switch inst.Op {
	case OP_PUSH, OP_POP, OP_CALL, OP_RET, OP_IN, OP_OUT:
		return true
	}
	return false
}

// Run executes the instruction against the register bank.
func (inst Instruction) Run(bank *Bank) (result instruction.Result, err error) {
	switch inst.Op {
	case OP_NOP:
		result = instruction.Nop()
	case OP_EMPTY:
		result = instruction.EmptyOperation()
	case OP_LDI:
		result, err = inst.ldi(bank)
	case OP_MOV:
		result, err = inst.mov(bank)
	case OP_ADD:
		result, err = inst.add(bank)
	case OP_SUB:
		result, err = inst.sub(bank)
	case OP_JMP:
		result, err = inst.jmp(bank)
	case OP_RJMP:
		result, err = inst.rjmp(bank)
	case OP_CALL:
		result, err = inst.call(bank)
	case OP_RET:
		result, err = inst.ret(bank)
	case OP_PUSH:
		result, err = inst.push(bank)
	case OP_POP:
		result, err = inst.pop(bank)
	case OP_IN:
		result, err = inst.in(bank)
	case OP_OUT:
		result, err = inst.out(bank)
	default:
		err = ErrOpcodeUnknown
	}

	if err != nil {
		err = &ErrExecute{Instruction: inst, Err: err}
	}

	return
}

func (inst Instruction) ldi(bank *Bank) (result instruction.Result, err error) {
	err = bank.WriteTo(R(inst.Rd), inst.K)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[LDI]: Load Rd(%d) with K:%d", inst.Rd, inst.K),
		1,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) mov(bank *Bank) (result instruction.Result, err error) {
	rr, err := bank.ReadFrom(R(inst.Rr))
	if err != nil {
		return
	}

	err = bank.WriteTo(R(inst.Rd), rr)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[MOV]: Copy Rr(%d):%d to Rd(%d)", inst.Rr, rr, inst.Rd),
		1,
		register.PcDefault(),
	)
	return
}

// alu runs a two register ALU operation and updates SREG.
func (inst Instruction) alu(bank *Bank, apply func(sel Selector, value register.Value) error, flags func(rd, rr, r register.Value) []bitop.Bit) (rd, rr, r register.Value, err error) {
	rd, err = bank.ReadFrom(R(inst.Rd))
	if err != nil {
		return
	}
	rr, err = bank.ReadFrom(R(inst.Rr))
	if err != nil {
		return
	}

	err = apply(R(inst.Rd), rr)
	if err != nil {
		return
	}

	r, err = bank.ReadFrom(R(inst.Rd))
	if err != nil {
		return
	}

	_, err = updateSreg(bank, flags(rd, rr, r))
	return
}

func (inst Instruction) add(bank *Bank) (result instruction.Result, err error) {
	execute := func(sel Selector, value register.Value) error {
		return bank.Execute(register.Add(sel, value))
	}
	rd, rr, r, err := inst.alu(bank, execute, addFlags)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[ADD]: Add Rd(%d):%d and Rr(%d):%d, Result:Rd(%d):%d", inst.Rd, rd, inst.Rr, rr, inst.Rd, r),
		1,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) sub(bank *Bank) (result instruction.Result, err error) {
	rd, rr, r, err := inst.alu(bank, bank.SubFrom, subFlags)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[SUB]: Subtract Rr(%d):%d from Rd(%d):%d, Result:Rd(%d):%d", inst.Rr, rr, inst.Rd, rd, inst.Rd, r),
		1,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) jmp(bank *Bank) (result instruction.Result, err error) {
	from, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	err = bank.UpdateProgramCounter(register.PcAbsolute(inst.K))
	if err != nil {
		return
	}

	to, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[JMP]: Jump from:%d to:%d, Result:PC:%d", from, inst.K, to),
		3,
		register.PcJumped(),
	)
	return
}

func (inst Instruction) rjmp(bank *Bank) (result instruction.Result, err error) {
	from, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[RJMP]: Jump from:%d by:%+d", from, inst.Offset+1),
		2,
		register.PcRelative(inst.Offset+1),
	)
	return
}

// pushByte stores a byte at SP, then decrements SP.
func (inst Instruction) pushByte(bank *Bank, value register.Value) (sp register.Value, err error) {
	if inst.Data == nil {
		err = ErrDataSpaceMissing
		return
	}

	sp, err = bank.ReadStackPointer()
	if err != nil {
		return
	}

	err = inst.Data.WriteTo(dataspace.Address(sp), value)
	if err != nil {
		return
	}

	err = bank.UpdateStackPointer(register.SpDecrement())
	return
}

// popByte increments SP, then loads the byte at SP.
func (inst Instruction) popByte(bank *Bank) (value register.Value, sp register.Value, err error) {
	if inst.Data == nil {
		err = ErrDataSpaceMissing
		return
	}

	err = bank.UpdateStackPointer(register.SpIncrement())
	if err != nil {
		return
	}

	sp, err = bank.ReadStackPointer()
	if err != nil {
		return
	}

	value, err = inst.Data.ReadFrom(dataspace.Address(sp))
	return
}

func (inst Instruction) push(bank *Bank) (result instruction.Result, err error) {
	rr, err := bank.ReadFrom(R(inst.Rr))
	if err != nil {
		return
	}

	at, err := inst.pushByte(bank, rr)
	if err != nil {
		return
	}

	sp, err := bank.ReadStackPointer()
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[PUSH]: Push Rr(%d):%d to:0x%04x, Result:SP:0x%04x", inst.Rr, rr, at, sp),
		2,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) pop(bank *Bank) (result instruction.Result, err error) {
	value, sp, err := inst.popByte(bank)
	if err != nil {
		return
	}

	err = bank.WriteTo(R(inst.Rd), value)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[POP]: Pop from:0x%04x to Rd(%d), Result:Rd(%d):%d", sp, inst.Rd, inst.Rd, value),
		2,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) call(bank *Bank) (result instruction.Result, err error) {
	from, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	// Return past the EMPTY slot of this two word instruction.
	ret := from + register.Value(OP_CALL.Words())

	_, err = inst.pushByte(bank, ret&0xff)
	if err != nil {
		return
	}
	_, err = inst.pushByte(bank, (ret>>8)&0xff)
	if err != nil {
		return
	}

	err = bank.UpdateProgramCounter(register.PcAbsolute(inst.K))
	if err != nil {
		return
	}

	to, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[CALL]: Call from:%d to:%d, Return:%d, Result:PC:%d", from, inst.K, ret, to),
		4,
		register.PcJumped(),
	)
	return
}

func (inst Instruction) ret(bank *Bank) (result instruction.Result, err error) {
	from, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	hi, _, err := inst.popByte(bank)
	if err != nil {
		return
	}
	lo, _, err := inst.popByte(bank)
	if err != nil {
		return
	}

	err = bank.UpdateProgramCounter(register.PcAbsolute(hi<<8 | lo))
	if err != nil {
		return
	}

	to, err := bank.ReadProgramCounter()
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[RET]: Return from:%d, Result:PC:%d", from, to),
		4,
		register.PcJumped(),
	)
	return
}

func (inst Instruction) in(bank *Bank) (result instruction.Result, err error) {
	value, err := bank.ReadFrom(register.Io[Status](int(inst.K)))
	if err != nil {
		return
	}

	err = bank.WriteTo(R(inst.Rd), value)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[IN]: Read IO(%d):%d to Rd(%d)", inst.K, value, inst.Rd),
		1,
		register.PcDefault(),
	)
	return
}

func (inst Instruction) out(bank *Bank) (result instruction.Result, err error) {
	rr, err := bank.ReadFrom(R(inst.Rr))
	if err != nil {
		return
	}

	err = bank.WriteTo(register.Io[Status](int(inst.K)), rr)
	if err != nil {
		return
	}

	result = instruction.NewResult(
		fmt.Sprintf("[OUT]: Write Rr(%d):%d to IO(%d)", inst.Rr, rr, inst.K),
		1,
		register.PcDefault(),
	)
	return
}
