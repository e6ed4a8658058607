// Package bitop provides the bit level helpers used when computing
// processor status flags.
package bitop

// Value is the widest register value handled by the simulator.
type Value = uint64

// Bit is a tri-state bit assignment used by Assign.
type Bit int8

const (
	BIT_KEEP  = Bit(0) // Leave the bit unchanged.
	BIT_CLEAR = Bit(1) // Force the bit to 0.
	BIT_SET   = Bit(2) // Force the bit to 1.
)

// String returns the flag as it is printed in traces.
func (b Bit) String() string {
	switch b {
	case BIT_CLEAR:
		return "0"
	case BIT_SET:
		return "1"
	default:
		return "-"
	}
}

// BitOf converts a computed flag into a forced assignment.
func BitOf(set bool) Bit {
	if set {
		return BIT_SET
	}
	return BIT_CLEAR
}

// GetBit returns bit id of value, counting from the LSB.
func GetBit(value Value, id uint) bool {
	if id >= 64 {
		return false
	}
	return (value & (1 << id)) != 0
}

// Assign applies flags to value.
// The first element of flags targets the most significant bit of the
// vector (bit len(flags)-1), the last element targets bit 0.
func Assign(value Value, flags []Bit) (result Value) {
	result = value
	for n, flag := range flags {
		id := uint(len(flags) - 1 - n)
		if id >= 64 {
			continue
		}
		switch flag {
		case BIT_SET:
			result |= 1 << id
		case BIT_CLEAR:
			result &^= 1 << id
		}
	}

	return
}

// Mask returns a mask of the low size bits.
func Mask(size uint) Value {
	if size >= 64 {
		return ^Value(0)
	}
	return (1 << size) - 1
}

// Complement interprets the low size bits of value as a two's complement
// number.
func Complement(value Value, size uint) int64 {
	if size == 0 {
		return 0
	}
	value &= Mask(size)
	if size < 64 && GetBit(value, size-1) {
		return int64(value) - int64(1)<<size
	}
	return int64(value)
}

// Encode is the inverse of Complement: it returns the low size bits of the
// two's complement representation of signed.
func Encode(signed int64, size uint) Value {
	return Value(signed) & Mask(size)
}
