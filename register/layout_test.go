package register

import (
	"fmt"
)

type testStatus int

const (
	testSREG = testStatus(0)
	testEXT  = testStatus(1)
)

func (ts testStatus) String() string {
	switch ts {
	case testSREG:
		return "SREG"
	case testEXT:
		return "EXT"
	}
	return fmt.Sprintf("testStatus(%d)", int(ts))
}

// testLayout: 32 x 8-bit general, SREG[1] and EXT[2] 8-bit status, 16-bit
// SP and PC, two 8-bit timers prescaled by 64 and 8, 256 x 8-bit io.
type testLayout struct {
	general [32]uint8
	sreg    uint8
	ext     [2]uint8
	sp      uint16
	pc      uint16
	timer   [2]uint8
	io      [256]uint8
}

var _ Layout[testStatus] = (*testLayout)(nil)

func (tl *testLayout) slot(sel Selector[testStatus]) (ptr8 *uint8, ptr16 *uint16, err error) {
	switch sel.Kind {
	case KIND_GENERAL:
		if sel.Id >= 0 && sel.Id < len(tl.general) {
			ptr8 = &tl.general[sel.Id]
			return
		}
	case KIND_TIMER:
		if sel.Id >= 0 && sel.Id < len(tl.timer) {
			ptr8 = &tl.timer[sel.Id]
			return
		}
	case KIND_IO:
		if sel.Id >= 0 && sel.Id < len(tl.io) {
			ptr8 = &tl.io[sel.Id]
			return
		}
	case KIND_STATUS:
		switch {
		case sel.Name == testSREG && sel.Id == 0:
			ptr8 = &tl.sreg
			return
		case sel.Name == testEXT && sel.Id >= 0 && sel.Id < len(tl.ext):
			ptr8 = &tl.ext[sel.Id]
			return
		}
	case KIND_PROGRAM_COUNTER:
		ptr16 = &tl.pc
		return
	case KIND_STACK_POINTER:
		ptr16 = &tl.sp
		return
	}

	err = sel.RangeError()
	return
}

func (tl *testLayout) ReadFrom(sel Selector[testStatus]) (value Value, err error) {
	ptr8, ptr16, err := tl.slot(sel)
	if err != nil {
		return
	}
	if ptr8 != nil {
		value = Value(*ptr8)
	} else {
		value = Value(*ptr16)
	}
	return
}

func (tl *testLayout) WriteTo(sel Selector[testStatus], value Value) (err error) {
	ptr8, ptr16, err := tl.slot(sel)
	if err != nil {
		return
	}
	if ptr8 != nil {
		*ptr8 = uint8(value)
	} else {
		*ptr16 = uint16(value)
	}
	return
}

func (tl *testLayout) Timers() int {
	return len(tl.timer)
}

func (tl *testLayout) Prescaler(timer int) Value {
	return [2]Value{64, 8}[timer]
}

func newTestBank() (bank *Bank[testStatus], layout *testLayout) {
	layout = &testLayout{sp: 0x8ff}
	bank = NewBank[testStatus](layout)
	return
}
