package core

import "fmt"

// Compatible tags recognized by Instantiate.
const (
	CompatClockSource = "clocksource"
	CompatClockEvent  = "clockevent"
)

// Descriptor describes one PIT64 block as enumerated by the platform. The
// function fields acquire the block's resources; each is called at most once
// per instantiation attempt, and anything acquired is released again if a
// later step fails.
type Descriptor struct {
	// Name identifies the block in errors and diagnostics.
	Name string

	// Compat selects the operating mode: CompatClockSource or
	// CompatClockEvent.
	Compat string

	// Layout selects the register variant. Nil means LayoutPIT64B.
	Layout *RegisterLayout

	// MapRegisters maps the block's register window. Required.
	MapRegisters func() (RegisterWindow, error)

	// RequestClock acquires the block's input clock, not yet enabled.
	// Required.
	RequestClock func() (Clock, error)

	// ResolveIRQ resolves the block's interrupt line. Required for
	// clockevent mode, unused otherwise.
	ResolveIRQ func() (IRQLine, error)
}

// Registry holds the at-most-one live instance per operating mode. It keeps
// non-owning references for the already-active check and for interrupt
// ownership; the owning handles are returned by the constructors.
type Registry struct {
	tk *Timekeeper
	cs *ClockSource
	ce *ClockEvent
}

// NewRegistry returns an empty registry. tk receives the clocksource as a
// low-level time source after a successful bring-up; nil disables that.
func NewRegistry(tk *Timekeeper) *Registry {
	return &Registry{tk: tk}
}

// ClockSource returns the live clocksource instance, nil if none.
func (r *Registry) ClockSource() *ClockSource {
	return r.cs
}

// ClockEvent returns the live clockevent instance, nil if none.
func (r *Registry) ClockEvent() *ClockEvent {
	return r.ce
}

// Instantiate runs the constructor named by the descriptor's compatible tag.
// cfg may be nil for clocksource mode.
func (r *Registry) Instantiate(desc *Descriptor, cfg *EventConfig) error {
	switch desc.Compat {
	case CompatClockSource:
		_, err := r.InstantiateClockSource(desc)
		return err
	case CompatClockEvent:
		if cfg == nil {
			return fmt.Errorf("%w: %s: clockevent needs an event config",
				ErrInvalidMode, desc.Name)
		}
		_, err := r.InstantiateClockEvent(desc, *cfg)
		return err
	}
	return fmt.Errorf("%w: %s: compatible %q", ErrInvalidMode, desc.Name, desc.Compat)
}

// acquireCore maps the register window and acquires the clock, the common
// prefix of both constructors. On failure nothing stays acquired.
func (r *Registry) acquireCore(desc *Descriptor) (timerCore, error) {
	layout := desc.Layout
	if layout == nil {
		layout = LayoutPIT64B
	}

	regs, err := desc.MapRegisters()
	if err != nil {
		return timerCore{}, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, desc.Name, err)
	}

	clk, err := desc.RequestClock()
	if err != nil {
		regs.Unmap()
		return timerCore{}, fmt.Errorf("%w: %s: clock: %v",
			ErrDependencyUnavailable, desc.Name, err)
	}

	return timerCore{regs: regs, clk: clk, layout: layout}, nil
}

// InstantiateClockSource builds the free-running counter mode from desc,
// installs it in the registry and registers it with the timekeeper. On any
// failure every resource acquired so far is released in reverse acquisition
// order and no instance becomes visible.
//
// The already-active check runs before any hardware is touched.
func (r *Registry) InstantiateClockSource(desc *Descriptor) (*ClockSource, error) {
	if r.cs != nil {
		return nil, fmt.Errorf("%w: clocksource %s", ErrAlreadyActive, desc.Name)
	}

	core, err := r.acquireCore(desc)
	if err != nil {
		return nil, err
	}

	if err := core.clk.Enable(); err != nil {
		core.clk.Release()
		core.regs.Unmap()
		return nil, fmt.Errorf("%w: %s: enable clock: %v",
			ErrDependencyUnavailable, desc.Name, err)
	}

	core.pres = choosePrescaler(core.clk.Rate(), ClockSourceMaxRate)
	cs := startClockSource(core, desc.Name)
	r.cs = cs

	if r.tk != nil {
		r.tk.Register(&TimeSource{
			Name: desc.Name,
			Read: cs.Read,
			Rate: cs.rate,
			Bits: 64,
		})
	}
	return cs, nil
}

// InstantiateClockEvent builds the alarm mode from desc: it additionally
// resolves the interrupt line and attaches the dispatch handler. The new
// instance starts in the shutdown state; the caller arms it with SetPeriodic
// or SetOneShot. Rollback on failure releases in strict reverse acquisition
// order: clock off, interrupt line, register window.
func (r *Registry) InstantiateClockEvent(desc *Descriptor, cfg EventConfig) (*ClockEvent, error) {
	if r.ce != nil {
		return nil, fmt.Errorf("%w: clockevent %s", ErrAlreadyActive, desc.Name)
	}
	if cfg.Handler == nil {
		return nil, fmt.Errorf("%w: %s: event handler required", ErrInvalidMode, desc.Name)
	}

	tickHz := cfg.TickHz
	if tickHz == 0 {
		tickHz = DefaultTickHz
	}

	core, err := r.acquireCore(desc)
	if err != nil {
		return nil, err
	}

	irq, err := desc.ResolveIRQ()
	if err != nil {
		core.clk.Release()
		core.regs.Unmap()
		return nil, fmt.Errorf("%w: %s: irq: %v", ErrDependencyUnavailable, desc.Name, err)
	}

	if err := core.clk.Enable(); err != nil {
		irq.Dispose()
		core.clk.Release()
		core.regs.Unmap()
		return nil, fmt.Errorf("%w: %s: enable clock: %v",
			ErrDependencyUnavailable, desc.Name, err)
	}

	core.pres = choosePrescaler(core.clk.Rate(), ClockEventMaxRate)

	ce := &ClockEvent{
		core:     core,
		irq:      irq,
		name:     desc.Name,
		tickHz:   tickHz,
		handler:  cfg.Handler,
		registry: r,
	}
	ce.rate = core.effectiveRate()
	ce.core.cycles = uint64(divRoundClosest(ce.rate, tickHz))

	if err := irq.Attach(desc.Name+"_tick", ce.handleInterrupt); err != nil {
		core.clk.Disable()
		irq.Dispose()
		core.clk.Release()
		core.regs.Unmap()
		return nil, fmt.Errorf("%w: %s: attach irq: %v",
			ErrDependencyUnavailable, desc.Name, err)
	}

	// Initial state is shutdown: counting stopped, interrupt disarmed.
	ce.core.stop()

	r.ce = ce
	return ce, nil
}
