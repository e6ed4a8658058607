package avr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mcugears/register"
)

func TestRegisters_Reset(t *testing.T) {
	assert := assert.New(t)

	bank, regs := NewBank(RAMEND)

	sp, err := bank.ReadStackPointer()
	assert.NoError(err)
	assert.Equal(register.Value(RAMEND), sp)

	pc, err := bank.ReadProgramCounter()
	assert.NoError(err)
	assert.Equal(register.Value(0), pc)

	assert.Equal(TIMER_COUNT, regs.Timers())
	assert.Equal(register.Value(TIMER0_PRESCALER), regs.Prescaler(0))
}

func TestRegisters_Width(t *testing.T) {
	table := [](struct {
		sel      Selector
		value    register.Value
		expected register.Value
	}){
		{R(0), 0x1ff, 0xff},
		{R(31), 0x42, 0x42},
		{Sreg(), 0x300, 0x00},
		{register.Timer[Status](0), 0x101, 0x01},
		{register.Io[Status](63), 0x7f, 0x7f},
		{register.StackPointer[Status](), 0x12345, 0x2345},
		{register.ProgramCounter[Status](), 0x10001, 0x0001},
	}

	for _, entry := range table {
		t.Run(entry.sel.String(), func(t *testing.T) {
			assert := assert.New(t)

			bank, _ := NewBank(RAMEND)
			assert.NoError(bank.WriteTo(entry.sel, entry.value))

			value, err := bank.ReadFrom(entry.sel)
			assert.NoError(err)
			assert.Equal(entry.expected, value)
		})
	}
}

func TestRegisters_Range(t *testing.T) {
	table := []Selector{
		R(32),
		R(-1),
		register.StatusOf(SREG, 1),
		register.StatusOf(Status(1), 0),
		register.Timer[Status](1),
		register.Io[Status](IO_COUNT),
	}

	for _, sel := range table {
		t.Run(sel.String(), func(t *testing.T) {
			assert := assert.New(t)

			bank, _ := NewBank(RAMEND)

			_, err := bank.ReadFrom(sel)
			assert.True(errors.Is(err, register.ErrRegisterRange))

			err = bank.WriteTo(sel, 1)
			assert.True(errors.Is(err, register.ErrRegisterRange))
		})
	}
}

func TestRegisters_Kind(t *testing.T) {
	assert := assert.New(t)

	bank, _ := NewBank(RAMEND)

	_, err := bank.ReadFrom(Selector{Kind: register.Kind(99)})
	assert.True(errors.Is(err, register.ErrRegisterKind))
}

func TestRegisters_Timer(t *testing.T) {
	assert := assert.New(t)

	bank, regs := NewBank(RAMEND)

	assert.NoError(bank.UpdateTimer(63))
	assert.Equal(uint8(0), regs.Timer[0])

	assert.NoError(bank.UpdateTimer(1))
	assert.Equal(uint8(1), regs.Timer[0])

	assert.NoError(bank.UpdateTimer(64 * 256))
	assert.Equal(uint8(1), regs.Timer[0])
}

func TestRegisters_String(t *testing.T) {
	assert := assert.New(t)

	regs := NewRegisters(RAMEND)
	regs.General[9] = 0xab
	regs.Sreg = 0b00000011

	text := regs.String()
	assert.Contains(text, "   sp: 08ff\n")
	assert.Contains(text, " sreg: ithsvnZC\n")
	assert.Contains(text, "   r8: 00 ab 00 00 00 00 00 00\n")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for name, value := range Defines() {
		defines[name] = value
	}

	assert.Equal("32", defines["GENERAL_COUNT"])
	assert.Equal("64", defines["TIMER0_PRESCALER"])
	assert.Equal("1", defines["SREG_Z"])
}
