package core

import (
	"math"
	"math/bits"
)

// TimeSource is a registered low-level time source: a raw tick reader plus
// the metadata needed to turn ticks into nanoseconds.
type TimeSource struct {
	Name string
	Read func() uint64
	Rate uint32 // ticks per second
	Bits uint8  // counter width
}

// Timekeeper holds the platform's current time source. The PIT64 clocksource
// registers itself here after a successful bring-up.
type Timekeeper struct {
	src *TimeSource
}

// NewTimekeeper returns a timekeeper with no source.
func NewTimekeeper() *Timekeeper {
	return &Timekeeper{}
}

// Register installs src as the current source. A source never displaces one
// with a wider counter: wider counters wrap later and keep time over longer
// idle periods.
func (tk *Timekeeper) Register(src *TimeSource) {
	if src == nil || src.Read == nil || src.Rate == 0 {
		return
	}
	if tk.src != nil && tk.src.Bits > src.Bits {
		return
	}
	tk.src = src
}

// Source returns the current source, nil before any registration.
func (tk *Timekeeper) Source() *TimeSource {
	return tk.src
}

// Nanoseconds converts the current source reading to nanoseconds since the
// counter started. The multiply runs in 128 bits so a full 64-bit tick count
// cannot overflow; a result beyond the uint64 range saturates.
func (tk *Timekeeper) Nanoseconds() uint64 {
	src := tk.src
	if src == nil {
		return 0
	}
	return ticksToNanoseconds(src.Read(), src.Rate)
}

func ticksToNanoseconds(ticks uint64, rate uint32) uint64 {
	hi, lo := bits.Mul64(ticks, 1e9)
	if hi >= uint64(rate) {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, uint64(rate))
	return q
}
