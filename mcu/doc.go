// Package mcu is the execution engine of a simulated microcontroller.
//
// An Mcu owns a register bank and a fixed instruction sequence indexed by
// the program counter. It advances one instruction at a time, through one
// of two lanes: the pure lane executes instructions that only touch the
// register bank, and the side-effect lane executes instructions that touch
// a data space or peripherals. A lane never executes an instruction of the
// other lane, so a host may interpose between side-effecting steps without
// changing either lane's outcome.
package mcu
