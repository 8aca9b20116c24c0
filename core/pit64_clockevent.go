package core

import "fmt"

// EventState enumerates the clockevent operating states.
type EventState uint8

const (
	EventShutdown EventState = iota
	EventPeriodic
	EventOneShot
)

func (s EventState) String() string {
	switch s {
	case EventShutdown:
		return "shutdown"
	case EventPeriodic:
		return "periodic"
	case EventOneShot:
		return "oneshot"
	}
	return fmt.Sprintf("EventState(%d)", uint8(s))
}

// DefaultTickHz is the periodic tick frequency used when the event config
// leaves it zero.
const DefaultTickHz = 100

// EventHandler is the externally supplied dispatch function invoked from the
// interrupt path when the programmed period expires. In one-shot mode the
// handler is responsible for arming the next deadline.
type EventHandler func(*ClockEvent)

// EventConfig carries the clockevent construction parameters.
type EventConfig struct {
	// TickHz is the tick frequency programmed by SetPeriodic.
	// Zero selects DefaultTickHz.
	TickHz uint32

	// Handler is invoked from interrupt context on period expiry. Required.
	Handler EventHandler
}

// ClockEvent exposes the PIT64 as a programmable one-shot or periodic alarm
// bound to an interrupt line.
//
// Mode switches (SetShutdown, SetPeriodic, SetOneShot, SetNextEvent) assume
// single-owner, non-reentrant access: the hardware has one set of control
// registers, and the surrounding system must not issue them concurrently.
type ClockEvent struct {
	core     timerCore
	irq      IRQLine
	name     string
	rate     uint32
	tickHz   uint32
	handler  EventHandler
	state    EventState
	registry *Registry
}

// State returns the current operating state.
func (ce *ClockEvent) State() EventState {
	return ce.state
}

// Rate returns the counting rate after the prescaler in Hz.
func (ce *ClockEvent) Rate() uint32 {
	return ce.rate
}

// Name returns the descriptor name the instance was built from.
func (ce *ClockEvent) Name() string {
	return ce.name
}

// SetShutdown stops counting and disarms the period interrupt. It is
// idempotent and doubles as the cancellation primitive for an armed one-shot.
func (ce *ClockEvent) SetShutdown() {
	ce.core.stop()
	ce.state = EventShutdown
}

// SetPeriodic programs a continuous tick at the configured tick frequency.
func (ce *ClockEvent) SetPeriodic() {
	ce.core.cycles = uint64(divRoundClosest(ce.rate, ce.tickHz))
	ce.core.reset(MRCont, true)
	ce.state = EventPeriodic
}

// SetOneShot switches to single-shot mode using whatever reload is currently
// stored. A following SetNextEvent supplies the actual deadline.
func (ce *ClockEvent) SetOneShot() {
	ce.core.reset(MRSMod, true)
	ce.state = EventOneShot
}

// SetNextEvent arms delta as the next one-shot deadline: the period registers
// are written through the atomic protocol and the block restarted, without a
// full reset cycle. Calling it outside one-shot mode is reported as an error.
func (ce *ClockEvent) SetNextEvent(delta uint64) error {
	if ce.state != EventOneShot {
		return fmt.Errorf("%w: set next event while %s", ErrInvalidMode, ce.state)
	}
	ce.core.cycles = delta
	ce.core.writeCounter(delta)
	ce.core.regs.Write32(ce.core.layout.CR, CRStart)
	return nil
}

// Suspend disarms the block and gates its clock. The operating state is kept
// so Resume can restore the pre-suspend condition.
func (ce *ClockEvent) Suspend() {
	ce.core.stop()
	ce.core.clk.Disable()
}

// Resume re-enables the clock and reprograms the block from the state
// recorded before suspend, never from the (reset) hardware registers. The
// periodic reload is recomputed from the stored tick frequency.
func (ce *ClockEvent) Resume() error {
	if err := ce.core.clk.Enable(); err != nil {
		debugf("clkevt %s: failed to enable clock on resume: %v", ce.name, err)
		return fmt.Errorf("%w: %s: enable clock on resume: %v",
			ErrDependencyUnavailable, ce.name, err)
	}

	switch ce.state {
	case EventPeriodic:
		ce.core.cycles = uint64(divRoundClosest(ce.rate, ce.tickHz))
		ce.core.reset(MRCont, true)
	case EventOneShot:
		ce.core.reset(MRSMod, true)
	default:
		// Nothing was armed before suspend; leave the block stopped.
	}
	return nil
}

// handleInterrupt services the period-expired interrupt. It reports false
// when this instance is not the registered owner of the line, or when the
// period-expired status bit is clear, so that other handlers on a shared
// line get their turn. A non-owner never reads ISR, leaving the status bit
// for the owner to consume.
func (ce *ClockEvent) handleInterrupt() bool {
	if ce.registry == nil || ce.registry.ce != ce {
		return false
	}
	if ce.core.regs.Read32(ce.core.layout.ISR)&IntPeriod == 0 {
		return false
	}
	ce.handler(ce)
	return true
}
