package dataspace

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mcugears/register"
)

// Ram is a flat byte array covering the addresses Start through End.
type Ram struct {
	Verbose bool // Set to enable verbose logging.

	Start Address
	End   Address
	Data  []byte // Data[0] holds address Start.
}

var _ DataSpace = (*Ram)(nil)

// NewRam creates a zeroed RAM covering start through end, inclusive.
func NewRam(start, end Address) (ram *Ram, err error) {
	if start > end {
		err = ErrBounds
		return
	}

	ram = &Ram{
		Start: start,
		End:   end,
	}
	ram.Reset()

	return
}

// Defines returns the assembler defines for the RAM bounds.
func (ram *Ram) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"RAMSTART": fmt.Sprintf("0x%04x", uint32(ram.Start)),
		"RAMEND":   fmt.Sprintf("0x%04x", uint32(ram.End)),
	})
}

// Reset zeroes the RAM contents.
func (ram *Ram) Reset() {
	size := int(ram.End-ram.Start) + 1
	if len(ram.Data) != size {
		ram.Data = make([]byte, size)
	} else {
		clear(ram.Data)
	}
}

// StartAddress is the first valid address.
func (ram *Ram) StartAddress() Address {
	return ram.Start
}

// EndAddress is the last valid address.
func (ram *Ram) EndAddress() Address {
	return ram.End
}

// index converts an address to a Data index.
func (ram *Ram) index(address Address) (index int, err error) {
	if address < ram.Start || address > ram.End {
		err = &ErrAddress{Address: address, Err: ErrAddressRange}
		return
	}

	index = int(address - ram.Start)
	return
}

// ReadFrom returns the byte at address.
func (ram *Ram) ReadFrom(address Address) (value register.Value, err error) {
	index, err := ram.index(address)
	if err != nil {
		return
	}

	value = register.Value(ram.Data[index])
	return
}

// WriteTo stores the low byte of value at address.
func (ram *Ram) WriteTo(address Address, value register.Value) (err error) {
	index, err := ram.index(address)
	if err != nil {
		return
	}

	if ram.Verbose {
		log.Printf("ram: [0x%04x] <- 0x%02x", uint32(address), uint8(value))
	}

	ram.Data[index] = byte(value)
	return
}
