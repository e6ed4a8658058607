// Package register implements the register bank abstraction of the
// simulator core.
//
// A microcontroller family supplies a Layout: the concrete storage of its
// general purpose, status, pointer, timer and I/O registers, addressed by
// typed Selectors. The Bank wraps a Layout and layers on top of it the
// behaviour shared by every family: register operations, wrapping
// arithmetic, program counter and stack pointer updates, and the
// prescaled timer clock model.
package register
