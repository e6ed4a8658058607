package instruction

import (
	"fmt"

	"github.com/ezrec/mcugears/register"
)

// Result records the effect of one executed instruction.
type Result struct {
	Trace  string                        // Human readable description of the effect.
	Clocks register.Value                // Processor cycles consumed.
	Change register.ProgramCounterChange // Program counter directive.
}

// NewResult creates an instruction result.
func NewResult(trace string, clocks register.Value, change register.ProgramCounterChange) Result {
	return Result{
		Trace:  trace,
		Clocks: clocks,
		Change: change,
	}
}

// String returns the result with its clocks and directive.
func (result Result) String() string {
	return fmt.Sprintf("%v (%d clocks, pc %v)", result.Trace, result.Clocks, result.Change)
}
