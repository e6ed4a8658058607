package mcu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mcugears/avr"
	"github.com/ezrec/mcugears/dataspace"
	"github.com/ezrec/mcugears/instruction"
	"github.com/ezrec/mcugears/mcu"
	"github.com/ezrec/mcugears/translate"
)

type testMcu = mcu.Mcu[avr.Status, avr.Instruction]

func newTestMcu(t *testing.T, program ...avr.Instruction) (*testMcu, *avr.Registers) {
	ram, err := dataspace.NewRam(avr.RAMSTART, avr.RAMEND)
	if err != nil {
		t.Fatal(err)
	}

	var insts []avr.Instruction
	for _, inst := range program {
		if inst.IsSideEffect() {
			inst.Data = ram
		}
		insts = append(insts, inst.Padded()...)
	}

	bank, regs := avr.NewBank(avr.RAMEND)
	return mcu.NewMcu(bank, insts), regs
}

func TestMcu_Partition(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t, avr.Ldi(1, 5), avr.Push(nil, 1), avr.Add(1, 1))

	// Pure instruction: the side-effect lane declines.
	trace, ok, err := mc.StepSideEffect()
	assert.NoError(err)
	assert.False(ok)
	assert.Equal("", trace)
	assert.Equal(uint16(0), regs.Pc)

	trace, ok, err = mc.StepPure()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("[LDI]: Load Rd(1) with K:5", trace)
	assert.Equal(uint16(1), regs.Pc)

	// Side-effecting instruction: the pure lane declines.
	_, ok, err = mc.StepPure()
	assert.NoError(err)
	assert.False(ok)
	assert.Equal(uint16(1), regs.Pc)
	assert.Equal(uint16(avr.RAMEND), regs.Sp)

	_, ok, err = mc.StepSideEffect()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(uint16(2), regs.Pc)
	assert.Equal(uint16(avr.RAMEND-1), regs.Sp)

	assert.Equal(2, mc.Steps)
}

func TestMcu_Lanes(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t,
		avr.Ldi(1, 5),
		avr.Ldi(2, 6),
		avr.Push(nil, 1),
		avr.Push(nil, 2),
		avr.Add(1, 2),
	)

	var traces []string
	for trace, err := range mc.Pure() {
		assert.NoError(err)
		traces = append(traces, trace)
	}
	assert.Equal(2, len(traces))
	assert.Equal(uint16(2), regs.Pc)

	traces = traces[:0]
	for trace, err := range mc.SideEffect() {
		assert.NoError(err)
		traces = append(traces, trace)
	}
	assert.Equal(2, len(traces))
	assert.Equal(uint16(4), regs.Pc)

	traces = traces[:0]
	for trace, err := range mc.Pure() {
		if errors.Is(err, mcu.ErrProgramCounterRange) {
			break
		}
		assert.NoError(err)
		traces = append(traces, trace)
	}
	assert.Equal([]string{"[ADD]: Add Rd(1):5 and Rr(2):6, Result:Rd(1):11"}, traces)
	assert.Equal(uint16(5), regs.Pc)
}

func TestMcu_LaneBreak(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t, avr.Nop(), avr.Nop(), avr.Nop())

	for _, err := range mc.Pure() {
		assert.NoError(err)
		break
	}
	assert.Equal(uint16(1), regs.Pc)
	assert.Equal(1, mc.Steps)
}

func TestMcu_LaneError(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t, avr.Nop(), avr.Ldi(avr.GENERAL_COUNT, 1), avr.Nop())

	var errs []error
	for _, err := range mc.Pure() {
		errs = append(errs, err)
	}
	assert.Equal(2, len(errs))
	assert.NoError(errs[0])
	assert.Error(errs[1])
	assert.Equal(uint16(1), regs.Pc)
}

func TestMcu_Fetch(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t, avr.Nop(), avr.Jmp(0))

	inst, err := mc.Fetch()
	assert.NoError(err)
	assert.Equal(avr.Nop(), inst)

	regs.Pc = 2
	inst, err = mc.Fetch()
	assert.NoError(err)
	assert.Equal(avr.Empty(), inst)

	regs.Pc = 3
	_, err = mc.Fetch()
	assert.True(errors.Is(err, mcu.ErrProgramCounterRange))

	var fetch *mcu.ErrFetch
	assert.True(errors.As(err, &fetch))
	assert.Equal(uint64(3), fetch.Pc)
	assert.Equal(3, fetch.Len)

	_, err = mc.Step()
	assert.True(errors.Is(err, mcu.ErrProgramCounterRange))
	_, _, err = mc.StepPure()
	assert.True(errors.Is(err, mcu.ErrProgramCounterRange))
	_, _, err = mc.StepSideEffect()
	assert.True(errors.Is(err, mcu.ErrProgramCounterRange))
}

func TestMcu_Step(t *testing.T) {
	assert := assert.New(t)

	mc, regs := newTestMcu(t,
		avr.Ldi(16, 3),    // 0
		avr.Call(nil, 4),  // 1, 2
		avr.Nop(),         // 3
		avr.Push(nil, 16), // 4
		avr.Pop(nil, 17),  // 5
		avr.Ret(nil),      // 6
	)

	var traces []string
	for range 6 {
		trace, err := mc.Step()
		assert.NoError(err)
		traces = append(traces, trace)
	}

	assert.Equal("[LDI]: Load Rd(16) with K:3", traces[0])
	assert.Equal("[CALL]: Call from:1 to:4, Return:3, Result:PC:4", traces[1])
	assert.Equal("[PUSH]: Push Rr(16):3 to:0x08fd, Result:SP:0x08fc", traces[2])
	assert.Equal("[RET]: Return from:6, Result:PC:3", traces[4])
	assert.Equal(instruction.NOP_TRACE, traces[5])
	assert.Equal(uint16(4), regs.Pc)
	assert.Equal(uint16(avr.RAMEND), regs.Sp)
	assert.Equal(uint8(3), regs.General[17])
}

func TestMcu_Determinism(t *testing.T) {
	assert := assert.New(t)

	program := []avr.Instruction{
		avr.Ldi(1, 100),
		avr.Ldi(2, 31),
		avr.Add(1, 2),
		avr.Push(nil, 1),
		avr.Sub(2, 1),
		avr.Pop(nil, 3),
		avr.Out(7, 3),
		avr.In(4, 7),
		avr.Add(4, 4),
	}

	run := func(interleaved bool) (traces []string, regs avr.Registers) {
		mc, r := newTestMcu(t, program...)
		for {
			var trace string
			var ok bool
			var err error
			if interleaved {
				for trace, err = range mc.Pure() {
					if err != nil {
						break
					}
					traces = append(traces, trace)
				}
				if err == nil {
					trace, ok, err = mc.StepSideEffect()
					if ok && err == nil {
						traces = append(traces, trace)
					}
				}
			} else {
				trace, err = mc.Step()
				if err == nil {
					traces = append(traces, trace)
				}
			}
			if errors.Is(err, mcu.ErrProgramCounterRange) {
				break
			}
			assert.NoError(err)
			if err != nil {
				break
			}
		}
		regs = *r
		return
	}

	traces1, regs1 := run(false)
	traces2, regs2 := run(false)
	traces3, regs3 := run(true)

	assert.Equal(len(program), len(traces1))
	assert.Equal(traces1, traces2)
	assert.Equal(regs1, regs2)
	assert.Equal(traces1, traces3)
	assert.Equal(regs1, regs3)
	assert.Equal(uint8(131), regs1.General[1])
	assert.Equal(uint8(131), regs1.General[3])
	assert.Equal(uint8(6), regs1.General[4])
}

func TestMcu_Len(t *testing.T) {
	assert := assert.New(t)

	insts := []avr.Instruction{avr.Nop(), avr.Jmp(0), avr.Empty()}
	bank, _ := avr.NewBank(avr.RAMEND)
	mc := mcu.NewMcu(bank, insts)
	assert.Equal(3, mc.Len())

	// The engine keeps its own copy of the sequence.
	insts[0] = avr.Ldi(1, 1)
	inst, err := mc.Fetch()
	assert.NoError(err)
	assert.Equal(avr.Nop(), inst)
}

func TestErrFetch(t *testing.T) {
	assert := assert.New(t)

	translate.SetLanguage(translate.DEFAULT_LANGUAGE)

	err := &mcu.ErrFetch{Pc: 0xffff, Len: 3, Err: mcu.ErrProgramCounterRange}
	assert.Contains(err.Error(), "pc 0xffff (of 3 instructions)")
}
