package instruction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mcugears/avr"
	"github.com/ezrec/mcugears/instruction"
	"github.com/ezrec/mcugears/register"
)

func TestEmptyOperation(t *testing.T) {
	assert := assert.New(t)

	result := instruction.EmptyOperation()
	assert.Equal(instruction.EMPTY_TRACE, result.Trace)
	assert.Equal(register.Value(0), result.Clocks)
	assert.Equal(register.PcDefault(), result.Change)
}

func TestNop(t *testing.T) {
	assert := assert.New(t)

	result := instruction.Nop()
	assert.Equal(instruction.NOP_TRACE, result.Trace)
	assert.Equal(register.Value(1), result.Clocks)
	assert.Equal(register.PcDefault(), result.Change)
}

func TestResult_String(t *testing.T) {
	assert := assert.New(t)

	result := instruction.NewResult("[X]: test", 2, register.PcRelative(-3))
	assert.Equal("[X]: test (2 clocks, pc relative(-3))", result.String())
}

func TestRunCycle(t *testing.T) {
	assert := assert.New(t)

	bank, regs := avr.NewBank(avr.RAMEND)
	regs.General[12] = 32
	regs.General[17] = 41
	regs.Pc = 22
	assert.NoError(bank.UpdateTimer(63))
	assert.Equal(uint8(0), regs.Timer[0])

	trace, err := instruction.RunCycle[avr.Status](avr.Add(12, 17), bank)
	assert.NoError(err)
	assert.Equal("[ADD]: Add Rd(12):32 and Rr(17):41, Result:Rd(12):73", trace)
	assert.Equal(uint8(73), regs.General[12])
	assert.Equal(uint8(41), regs.General[17])
	assert.Equal(uint16(23), regs.Pc)
	assert.Equal(uint8(1), regs.Timer[0])
}

func TestRunCycle_Empty(t *testing.T) {
	assert := assert.New(t)

	bank, regs := avr.NewBank(avr.RAMEND)
	regs.Pc = 5

	trace, err := instruction.RunCycle[avr.Status](avr.Empty(), bank)
	assert.NoError(err)
	assert.Equal(instruction.EMPTY_TRACE, trace)
	assert.Equal(uint16(6), regs.Pc)

	interval, err := bank.Interval(0)
	assert.NoError(err)
	assert.Equal(register.Value(0), interval)
}

func TestRunCycle_Error(t *testing.T) {
	assert := assert.New(t)

	bank, regs := avr.NewBank(avr.RAMEND)
	regs.Pc = 5

	trace, err := instruction.RunCycle[avr.Status](avr.Ldi(40, 1), bank)
	assert.Error(err)
	assert.Equal("", trace)
	assert.Equal(uint16(5), regs.Pc)
}
