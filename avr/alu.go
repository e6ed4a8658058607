package avr

import (
	"github.com/ezrec/mcugears/bitop"
	"github.com/ezrec/mcugears/register"
)

// sregFlags builds the SREG assignment vector for an 8-bit ALU result.
// I and T are never touched by the ALU.
func sregFlags(h, v, n, z, c bool) []bitop.Bit {
	s := n != v
	return []bitop.Bit{
		bitop.BIT_KEEP, // I
		bitop.BIT_KEEP, // T
		bitop.BitOf(h),
		bitop.BitOf(s),
		bitop.BitOf(v),
		bitop.BitOf(n),
		bitop.BitOf(z),
		bitop.BitOf(c),
	}
}

// addFlags computes the SREG flags of r = rd + rr.
func addFlags(rd, rr, r register.Value) []bitop.Bit {
	rd3, rr3, r3 := bitop.GetBit(rd, 3), bitop.GetBit(rr, 3), bitop.GetBit(r, 3)
	rd7, rr7, r7 := bitop.GetBit(rd, 7), bitop.GetBit(rr, 7), bitop.GetBit(r, 7)

	h := rd3 && rr3 || rr3 && !r3 || !r3 && rd3
	v := rd7 && rr7 && !r7 || !rd7 && !rr7 && r7
	n := r7
	z := r&0xff == 0
	c := rd7 && rr7 || rr7 && !r7 || !r7 && rd7

	return sregFlags(h, v, n, z, c)
}

// subFlags computes the SREG flags of r = rd - rr.
func subFlags(rd, rr, r register.Value) []bitop.Bit {
	rd3, rr3, r3 := bitop.GetBit(rd, 3), bitop.GetBit(rr, 3), bitop.GetBit(r, 3)
	rd7, rr7, r7 := bitop.GetBit(rd, 7), bitop.GetBit(rr, 7), bitop.GetBit(r, 7)

	h := !rd3 && rr3 || rr3 && r3 || r3 && !rd3
	v := rd7 && !rr7 && !r7 || !rd7 && rr7 && r7
	n := r7
	z := r&0xff == 0
	c := !rd7 && rr7 || rr7 && r7 || r7 && !rd7

	return sregFlags(h, v, n, z, c)
}

// updateSreg applies a flag vector to SREG.
func updateSreg(bank *Bank, flags []bitop.Bit) (sreg register.Value, err error) {
	sreg, err = bank.ReadFrom(Sreg())
	if err != nil {
		return
	}

	sreg = bitop.Assign(sreg, flags)
	err = bank.WriteTo(Sreg(), sreg)
	return
}
