package register

// Layout is the register storage a microcontroller family supplies.
//
// Writes truncate value to the backing width of the selected register,
// modulo 2^width, and never fail for that reason. Reads zero-extend back to
// Value. A selector that the layout does not back returns an error
// wrapping ErrRegisterRange; see Selector.RangeError.
type Layout[S Status] interface {
	// ReadFrom returns the current value of a register.
	ReadFrom(sel Selector[S]) (value Value, err error)
	// WriteTo stores value, truncated, into a register.
	WriteTo(sel Selector[S], value Value) (err error)
	// Timers returns the number of timer channels.
	Timers() int
	// Prescaler returns the clock divider of a timer channel.
	Prescaler(timer int) Value
}
