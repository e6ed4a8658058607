// Package dataspace provides the data memory collaborator of a simulated
// microcontroller: a flat, byte addressed store with fixed bounds.
package dataspace

import (
	"github.com/ezrec/mcugears/register"
)

// Address is a flat byte index into a data space.
type Address uint32

// DataSpace is the data memory interface used by side-effecting
// instructions.
type DataSpace interface {
	// ReadFrom returns the value stored at address.
	ReadFrom(address Address) (value register.Value, err error)
	// WriteTo stores value, truncated to the cell width, at address.
	WriteTo(address Address, value register.Value) (err error)
	// StartAddress is the first valid address.
	StartAddress() Address
	// EndAddress is the last valid address.
	EndAddress() Address
}
