package dataspace

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mcugears/register"
)

func TestRam_Initialize(t *testing.T) {
	assert := assert.New(t)

	ram, err := NewRam(0x0100, 0x08ff)
	assert.NoError(err)
	assert.Equal(0x0800, len(ram.Data))
	assert.Equal(Address(0x0100), ram.StartAddress())
	assert.Equal(Address(0x08ff), ram.EndAddress())

	for _, data := range ram.Data {
		assert.Equal(byte(0), data)
	}

	_, err = NewRam(0x10, 0x0f)
	assert.ErrorIs(err, ErrBounds)
}

func TestRam_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		address  Address
		value    register.Value
		expected register.Value
	}){
		{"default", 0x1f3, 110, 110},
		{"truncate", 0x300, 420, 164},
		{"start", 0x100, 1, 1},
		{"end", 0x8ff, 255, 255},
	}

	for _, entry := range table {
		ram, err := NewRam(0x0100, 0x08ff)
		assert.NoError(err)

		err = ram.WriteTo(entry.address, entry.value)
		assert.NoError(err, entry.name)

		value, err := ram.ReadFrom(entry.address)
		assert.NoError(err, entry.name)
		assert.Equal(entry.expected, value, entry.name)
	}

	ram, _ := NewRam(0x0100, 0x08ff)
	ram.Data[0x1ff-0x100] = 21
	value, err := ram.ReadFrom(0x1ff)
	assert.NoError(err)
	assert.Equal(register.Value(21), value)
}

func TestRam_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	ram, _ := NewRam(0x0100, 0x08ff)

	for _, address := range []Address{0, 0xff, 0x900, 0xffff} {
		err := ram.WriteTo(address, 1)
		assert.ErrorIs(err, ErrAddressRange)

		_, err = ram.ReadFrom(address)
		assert.ErrorIs(err, ErrAddressRange)

		var addr_err *ErrAddress
		assert.ErrorAs(err, &addr_err)
		assert.Equal(address, addr_err.Address)
	}
}

func TestRam_Reset(t *testing.T) {
	assert := assert.New(t)

	ram, _ := NewRam(0x0100, 0x01ff)
	assert.NoError(ram.WriteTo(0x0150, 0xaa))

	ram.Reset()
	value, err := ram.ReadFrom(0x0150)
	assert.NoError(err)
	assert.Equal(register.Value(0), value)
	assert.Equal(0x100, len(ram.Data))
}

func TestRam_Defines(t *testing.T) {
	assert := assert.New(t)

	ram, _ := NewRam(0x0100, 0x08ff)
	defines := maps.Collect(ram.Defines())

	assert.Equal(map[string]string{"RAMSTART": "0x0100", "RAMEND": "0x08ff"}, defines)
}
