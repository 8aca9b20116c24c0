package core

// Prescaler limits imposed by the 4-bit PRES field in the mode register.
// The field stores the divider minus one, so a divider of 0 is
// unrepresentable and must never reach the encoding below.
const (
	MinPrescaler = 1
	MaxPrescaler = 16
)

// Target maximum counting rates for the two operating modes.
const (
	ClockSourceMaxRate = 2500000 // 2.5 MHz
	ClockEventMaxRate  = 2500000 // 2.5 MHz
)

// choosePrescaler returns the smallest divider in [MinPrescaler, MaxPrescaler]
// whose output rate does not exceed maxRate. The output rate is non-increasing
// in the divider, so the first fit is also the minimal fit. When even the
// largest divider leaves the rate above maxRate, the largest is returned and
// the caller accepts the closest achievable rate.
func choosePrescaler(clkRate, maxRate uint32) uint32 {
	for pres := uint32(MinPrescaler); pres < MaxPrescaler; pres++ {
		if clkRate/pres <= maxRate {
			return pres
		}
	}
	return MaxPrescaler
}

// divRoundClosest divides n by d rounding to the nearest integer.
func divRoundClosest(n, d uint32) uint32 {
	return (n + d/2) / d
}

// timerCore is the state shared by both operating modes: the mapped register
// window, the input clock, the register layout, the period reload value and
// the chosen prescaler.
type timerCore struct {
	regs   RegisterWindow
	clk    Clock
	layout *RegisterLayout
	cycles uint64
	pres   uint32
}

// readCounter returns the 64-bit current value. The LSB register must be
// read first: if the low word rolls over between the two reads, the MSB read
// afterwards reflects the post-rollover value, which is off by at most one
// read latency for an increasing counter. Reading MSB first could pair a
// pre-rollover high word with a post-rollover low word.
func (c *timerCore) readCounter() uint64 {
	lsb := c.regs.Read32(c.layout.LSBCVR)
	msb := c.regs.Read32(c.layout.MSBCVR)
	return uint64(msb)<<32 | uint64(lsb)
}

// writeCounter programs the 64-bit period. The MSB half lands in a shadow
// register and the device applies both halves on the LSB write, so the LSB
// must be written last for the update to be atomic even when SMOD is set.
func (c *timerCore) writeCounter(v uint64) {
	c.regs.Write32(c.layout.MSBPR, uint32(v>>32))
	c.regs.Write32(c.layout.LSBPR, uint32(v))
}

// reset reprograms the block from scratch. The order is fixed by the
// hardware: mode bits are undefined right after a software reset, the counter
// loads from the period registers on start, and the period interrupt must be
// enabled before start so the first expiry cannot fire unobserved.
func (c *timerCore) reset(mode uint32, irqEnable bool) {
	mode |= (c.pres - 1) << MRPresShift & MRPresMask

	c.regs.Write32(c.layout.CR, CRSWRst)
	c.regs.Write32(c.layout.MR, mode)
	c.writeCounter(c.cycles)
	if irqEnable {
		c.regs.Write32(c.layout.IER, IntPeriod)
	}
	c.regs.Write32(c.layout.CR, CRStart)
}

// stop issues a software reset, halting the counter and disarming the period
// interrupt.
func (c *timerCore) stop() {
	c.regs.Write32(c.layout.CR, CRSWRst)
}

// effectiveRate is the counting rate after the prescaler.
func (c *timerCore) effectiveRate() uint32 {
	return c.clk.Rate() / c.pres
}
