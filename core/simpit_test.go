package core

import "fmt"

// Test fixtures shared by the core tests: a simulated PIT64 block plus mock
// clock and interrupt line implementations. The simulation models the parts
// of the hardware the driver depends on: the shadow-latched 64-bit period
// write, software reset and start, the up-counting current value, and the
// read-to-clear period status bit. Every register access lands in an ordered
// log so tests can assert protocol sequences.

func wr(offset, value uint32) string {
	return fmt.Sprintf("w[%#04x]=%#x", offset, value)
}

func rd(offset uint32) string {
	return fmt.Sprintf("r[%#04x]", offset)
}

type simPIT struct {
	layout    *RegisterLayout
	mode      uint32
	imr       uint32
	isr       uint32
	counter   uint64
	period    uint64
	msbShadow uint32
	msbLatch  uint32
	running   bool
	unmapped  bool
	log       []string
	events    *[]string
}

func newSimPIT(layout *RegisterLayout) *simPIT {
	return &simPIT{layout: layout}
}

func (d *simPIT) Read32(offset uint32) uint32 {
	d.log = append(d.log, rd(offset))
	switch offset {
	case d.layout.ISR:
		v := d.isr
		d.isr = 0
		return v
	case d.layout.IMR:
		return d.imr
	case d.layout.MR:
		return d.mode
	case d.layout.LSBCVR:
		d.msbLatch = uint32(d.counter >> 32)
		return uint32(d.counter)
	case d.layout.MSBCVR:
		return d.msbLatch
	}
	return 0
}

func (d *simPIT) Write32(offset, value uint32) {
	d.log = append(d.log, wr(offset, value))
	switch offset {
	case d.layout.CR:
		if value&CRSWRst != 0 {
			d.running = false
			d.mode = 0
			d.imr = 0
			d.isr = 0
			d.counter = 0
			d.period = 0
		}
		if value&CRStart != 0 {
			d.counter = 0
			d.running = true
		}
	case d.layout.MR:
		d.mode = value
	case d.layout.MSBPR:
		d.msbShadow = value
	case d.layout.LSBPR:
		d.period = uint64(d.msbShadow)<<32 | uint64(value)
	case d.layout.IER:
		d.imr |= value
	case d.layout.IDR:
		d.imr &^= value
	}
}

func (d *simPIT) Unmap() {
	d.unmapped = true
	if d.events != nil {
		*d.events = append(*d.events, "regs.unmap")
	}
}

// tick advances the counter by n prescaled input pulses.
func (d *simPIT) tick(n uint64) {
	if !d.running {
		return
	}
	d.counter += n
	if d.period != 0 && d.counter >= d.period {
		d.isr |= IntPeriod
		if d.mode&MRCont != 0 {
			d.counter -= d.period
		} else {
			d.running = false
		}
	}
}

// expire forces the period-expired status bit without advancing the counter.
func (d *simPIT) expire() {
	d.isr |= IntPeriod
}

// presField extracts the programmed prescaler-minus-one value.
func (d *simPIT) presField() uint32 {
	return (d.mode & MRPresMask) >> MRPresShift
}

type simClock struct {
	rate      uint32
	enabled   bool
	released  bool
	enableErr error
	events    *[]string
}

func (c *simClock) record(s string) {
	if c.events != nil {
		*c.events = append(*c.events, s)
	}
}

func (c *simClock) Enable() error {
	if c.enableErr != nil {
		return c.enableErr
	}
	c.enabled = true
	c.record("clk.enable")
	return nil
}

func (c *simClock) Disable() {
	c.enabled = false
	c.record("clk.disable")
}

func (c *simClock) Rate() uint32 {
	return c.rate
}

func (c *simClock) Release() {
	c.released = true
	c.record("clk.release")
}

type simIRQ struct {
	name      string
	handler   IRQHandler
	attachErr error
	disposed  bool
	events    *[]string
}

func (i *simIRQ) record(s string) {
	if i.events != nil {
		*i.events = append(*i.events, s)
	}
}

func (i *simIRQ) Attach(name string, h IRQHandler) error {
	if i.attachErr != nil {
		return i.attachErr
	}
	i.name = name
	i.handler = h
	i.record("irq.attach")
	return nil
}

func (i *simIRQ) Detach() {
	i.handler = nil
	i.record("irq.detach")
}

func (i *simIRQ) Dispose() {
	i.handler = nil
	i.disposed = true
	i.record("irq.dispose")
}

// trigger delivers one interrupt to the attached handler, the way the
// platform's dispatch loop would.
func (i *simIRQ) trigger() bool {
	if i.handler == nil {
		return false
	}
	return i.handler()
}

// simFixture bundles a descriptor whose providers hand out the simulated
// resources and record acquisition order.
type simFixture struct {
	desc   *Descriptor
	dev    *simPIT
	clk    *simClock
	irq    *simIRQ
	events []string
}

func newSimFixture(compat string, rate uint32) *simFixture {
	f := &simFixture{}
	f.dev = newSimPIT(LayoutPIT64B)
	f.dev.events = &f.events
	f.clk = &simClock{rate: rate, events: &f.events}
	f.irq = &simIRQ{events: &f.events}
	f.desc = &Descriptor{
		Name:   "pit64",
		Compat: compat,
		MapRegisters: func() (RegisterWindow, error) {
			f.events = append(f.events, "regs.map")
			return f.dev, nil
		},
		RequestClock: func() (Clock, error) {
			f.events = append(f.events, "clk.request")
			return f.clk, nil
		},
		ResolveIRQ: func() (IRQLine, error) {
			f.events = append(f.events, "irq.resolve")
			return f.irq, nil
		},
	}
	return f
}
