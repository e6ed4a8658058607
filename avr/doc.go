// Package avr is an example microcontroller family for the mcugears core,
// modelled on the 8-bit AVR register file.
//
// The family has 32 8-bit general purpose registers (r0-r31), one 8-bit
// status register (SREG, flags I T H S V N Z C from bit 7 to bit 0), a
// 16-bit stack pointer and program counter, one 8-bit timer prescaled by
// 64, and 64 8-bit I/O registers.
//
// The instruction set is a small subset used to exercise the core: NOP,
// LDI, MOV, ADD, SUB, JMP, RJMP, CALL, RET, PUSH, POP, IN and OUT. JMP and
// CALL are two words long and are followed by an EMPTY slot. PUSH, POP,
// CALL and RET touch the data space, IN and OUT touch I/O; those are the
// side-effecting instructions.
//
// The assembler accepts one instruction per line, with labels, .equ
// equates and $(...) compile-time expressions.
package avr
