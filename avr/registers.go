package avr

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/mcugears/register"
)

const (
	GENERAL_COUNT    = 32     // General purpose registers.
	IO_COUNT         = 64     // I/O registers.
	TIMER_COUNT      = 1      // Timer channels.
	TIMER0_PRESCALER = 64     // Clock divider of timer 0.
	RAMSTART         = 0x0100 // First address of the user RAM.
	RAMEND           = 0x08ff // Last address of the user RAM.
)

var _avr_defines = map[string]string{
	"GENERAL_COUNT":    fmt.Sprintf("%d", GENERAL_COUNT),
	"IO_COUNT":         fmt.Sprintf("%d", IO_COUNT),
	"TIMER0_PRESCALER": fmt.Sprintf("%d", TIMER0_PRESCALER),
	"SREG_C":           fmt.Sprintf("%d", SREG_C),
	"SREG_Z":           fmt.Sprintf("%d", SREG_Z),
	"SREG_N":           fmt.Sprintf("%d", SREG_N),
	"SREG_V":           fmt.Sprintf("%d", SREG_V),
	"SREG_S":           fmt.Sprintf("%d", SREG_S),
	"SREG_H":           fmt.Sprintf("%d", SREG_H),
}

// Defines returns the assembler defines of the family.
func Defines() iter.Seq2[string, string] {
	return maps.All(_avr_defines)
}

// Selector is a register selector of the family.
type Selector = register.Selector[Status]

// Bank is a register bank of the family.
type Bank = register.Bank[Status]

// R selects general purpose register id.
func R(id int) Selector {
	return register.General[Status](id)
}

// Sreg selects the status register.
func Sreg() Selector {
	return register.StatusOf(SREG, 0)
}

// Registers is the register file of the family.
type Registers struct {
	General [GENERAL_COUNT]uint8
	Sreg    uint8
	Sp      uint16
	Pc      uint16
	Timer   [TIMER_COUNT]uint8
	Io      [IO_COUNT]uint8
}

var _ register.Layout[Status] = (*Registers)(nil)

// NewRegisters creates a zeroed register file with the stack pointer at
// the top of the RAM.
func NewRegisters(ramEnd uint16) (regs *Registers) {
	regs = &Registers{
		Sp: ramEnd,
	}

	return
}

// NewBank creates a register bank over a fresh register file.
func NewBank(ramEnd uint16) (bank *Bank, regs *Registers) {
	regs = NewRegisters(ramEnd)
	bank = register.NewBank[Status](regs)
	return
}

// slot returns the backing storage of a selector.
func (regs *Registers) slot(sel Selector) (ptr8 *uint8, ptr16 *uint16, err error) {
	switch sel.Kind {
	case register.KIND_GENERAL:
		if sel.Id >= 0 && sel.Id < len(regs.General) {
			ptr8 = &regs.General[sel.Id]
			return
		}
	case register.KIND_STATUS:
		if sel.Name == SREG && sel.Id == 0 {
			ptr8 = &regs.Sreg
			return
		}
	case register.KIND_TIMER:
		if sel.Id >= 0 && sel.Id < len(regs.Timer) {
			ptr8 = &regs.Timer[sel.Id]
			return
		}
	case register.KIND_IO:
		if sel.Id >= 0 && sel.Id < len(regs.Io) {
			ptr8 = &regs.Io[sel.Id]
			return
		}
	case register.KIND_STACK_POINTER:
		ptr16 = &regs.Sp
		return
	case register.KIND_PROGRAM_COUNTER:
		ptr16 = &regs.Pc
		return
	default:
		err = &register.ErrSelector{Selector: sel.String(), Err: register.ErrRegisterKind}
		return
	}

	err = sel.RangeError()
	return
}

// ReadFrom returns a register value.
func (regs *Registers) ReadFrom(sel Selector) (value register.Value, err error) {
	ptr8, ptr16, err := regs.slot(sel)
	if err != nil {
		return
	}

	if ptr8 != nil {
		value = register.Value(*ptr8)
	} else {
		value = register.Value(*ptr16)
	}
	return
}

// WriteTo stores a register value, truncated to the register width.
func (regs *Registers) WriteTo(sel Selector, value register.Value) (err error) {
	ptr8, ptr16, err := regs.slot(sel)
	if err != nil {
		return
	}

	if ptr8 != nil {
		*ptr8 = uint8(value)
	} else {
		*ptr16 = uint16(value)
	}
	return
}

// Timers returns the number of timer channels.
func (regs *Registers) Timers() int {
	return TIMER_COUNT
}

// Prescaler returns the clock divider of a timer channel.
func (regs *Registers) Prescaler(timer int) register.Value {
	return TIMER0_PRESCALER
}

// String returns the register file as text.
func (regs *Registers) String() (text string) {
	text += fmt.Sprintf("%5s: %04x\n", "pc", regs.Pc)
	text += fmt.Sprintf("%5s: %04x\n", "sp", regs.Sp)
	text += fmt.Sprintf("%5s: %v\n", "sreg", FormatSreg(regs.Sreg))
	for n, timer := range regs.Timer {
		text += fmt.Sprintf("%5s: %02x\n", fmt.Sprintf("tmr%d", n), timer)
	}
	for row := 0; row < GENERAL_COUNT; row += 8 {
		text += fmt.Sprintf("%5s:", fmt.Sprintf("r%d", row))
		for _, value := range regs.General[row : row+8] {
			text += fmt.Sprintf(" %02x", value)
		}
		text += "\n"
	}

	return
}
