package avr

import (
	"fmt"
)

// Status names the status registers of the family.
type Status int

const (
	SREG = Status(0) // SREG
)

func (st Status) String() string {
	switch st {
	case SREG:
		return "SREG"
	}
	return fmt.Sprintf("Status(%d)", int(st))
}

// SREG flag bit positions.
const (
	SREG_C = 0 // Carry
	SREG_Z = 1 // Zero
	SREG_N = 2 // Negative
	SREG_V = 3 // Two's complement overflow
	SREG_S = 4 // Sign, N xor V
	SREG_H = 5 // Half carry
	SREG_T = 6 // Bit copy storage
	SREG_I = 7 // Global interrupt enable
)

// sregNames are the flag letters from bit 7 down to bit 0.
const sregNames = "ITHSVNZC"

// FormatSreg renders a status value as flag letters, upper case when set.
func FormatSreg(sreg uint8) (text string) {
	for n := range 8 {
		bit := 7 - n
		letter := sregNames[n]
		if (sreg>>bit)&1 == 0 {
			letter += 'a' - 'A'
		}
		text += string(letter)
	}

	return
}
