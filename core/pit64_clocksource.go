package core

import "math"

// ClockSource exposes the PIT64 as a free-running, monotonically increasing
// 64-bit counter.
type ClockSource struct {
	core timerCore
	name string
	rate uint32
}

// startClockSource configures an acquired core as a free-running counter:
// maximum period so the terminal state is never reached (the counter wraps
// only at 2^64), continuous mode, no interrupt.
func startClockSource(core timerCore, name string) *ClockSource {
	cs := &ClockSource{core: core, name: name}
	cs.core.cycles = math.MaxUint64
	cs.core.reset(MRCont, false)
	cs.rate = cs.core.effectiveRate()
	return cs
}

// Read returns the current counter value through the atomic read protocol.
// It never fails, has no rate limit, and is strictly increasing modulo 2^64
// wraparound.
func (cs *ClockSource) Read() uint64 {
	return cs.core.readCounter()
}

// Rate returns the counting rate after the prescaler in Hz.
func (cs *ClockSource) Rate() uint32 {
	return cs.rate
}

// Name returns the descriptor name the instance was built from.
func (cs *ClockSource) Name() string {
	return cs.name
}
