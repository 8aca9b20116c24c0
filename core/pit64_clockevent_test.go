package core

import (
	"errors"
	"testing"
)

func newTestClockEvent(t *testing.T, rate, tickHz uint32, handler EventHandler) (*ClockEvent, *simFixture, *Registry) {
	t.Helper()
	if handler == nil {
		handler = func(*ClockEvent) {}
	}
	f := newSimFixture(CompatClockEvent, rate)
	r := NewRegistry(nil)
	ce, err := r.InstantiateClockEvent(f.desc, EventConfig{TickHz: tickHz, Handler: handler})
	if err != nil {
		t.Fatalf("InstantiateClockEvent failed: %v", err)
	}
	return ce, f, r
}

func TestClockEventInitialState(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)

	if ce.State() != EventShutdown {
		t.Errorf("initial state = %s, want shutdown", ce.State())
	}
	if f.dev.running {
		t.Error("device counting before any mode was set")
	}
	if ce.Rate() != 2500000 {
		t.Errorf("effective rate = %d, want 2500000", ce.Rate())
	}
}

func TestStateMachineClosure(t *testing.T) {
	type transition struct {
		name string
		prep func(*ClockEvent)
		op   func(*ClockEvent)
		want EventState
	}

	toShutdown := func(ce *ClockEvent) { ce.SetShutdown() }
	toPeriodic := func(ce *ClockEvent) { ce.SetPeriodic() }
	toOneShot := func(ce *ClockEvent) { ce.SetOneShot() }

	transitions := []transition{
		{"shutdown->periodic", toShutdown, toPeriodic, EventPeriodic},
		{"shutdown->oneshot", toShutdown, toOneShot, EventOneShot},
		{"shutdown->shutdown", toShutdown, toShutdown, EventShutdown},
		{"periodic->shutdown", toPeriodic, toShutdown, EventShutdown},
		{"periodic->oneshot", toPeriodic, toOneShot, EventOneShot},
		{"periodic->periodic", toPeriodic, toPeriodic, EventPeriodic},
		{"oneshot->shutdown", toOneShot, toShutdown, EventShutdown},
		{"oneshot->periodic", toOneShot, toPeriodic, EventPeriodic},
		{"oneshot->oneshot", toOneShot, toOneShot, EventOneShot},
		{"oneshot->setnextevent", toOneShot, func(ce *ClockEvent) {
			if err := ce.SetNextEvent(1234); err != nil {
				t.Errorf("SetNextEvent in oneshot failed: %v", err)
			}
		}, EventOneShot},
	}

	for _, tr := range transitions {
		ce, _, _ := newTestClockEvent(t, 2500000, 100, nil)
		tr.prep(ce)
		tr.op(ce)
		if ce.State() != tr.want {
			t.Errorf("%s: state = %s, want %s", tr.name, ce.State(), tr.want)
		}
	}
}

func TestSetPeriodicReload(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)

	ce.SetPeriodic()

	if f.dev.period != 25000 {
		t.Errorf("periodic reload = %d, want 25000", f.dev.period)
	}
	if f.dev.mode&MRCont == 0 {
		t.Error("continuous mode bit not set")
	}
	if f.dev.imr&IntPeriod == 0 {
		t.Error("period interrupt not enabled")
	}
	if !f.dev.running {
		t.Error("device not started")
	}
}

func TestSetOneShotMode(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)

	ce.SetOneShot()

	if f.dev.mode&MRSMod == 0 {
		t.Error("single-shot mode bit not set")
	}
	if f.dev.mode&MRCont != 0 {
		t.Error("continuous mode bit set in one-shot mode")
	}
	if f.dev.imr&IntPeriod == 0 {
		t.Error("period interrupt not enabled")
	}
}

func TestSetNextEventArmsDeadline(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
	ce.SetOneShot()
	mark := len(f.dev.log)

	if err := ce.SetNextEvent(12345); err != nil {
		t.Fatalf("SetNextEvent failed: %v", err)
	}

	if f.dev.period != 12345 {
		t.Errorf("armed deadline = %d, want 12345", f.dev.period)
	}
	if ce.State() != EventOneShot {
		t.Errorf("state changed to %s", ce.State())
	}
	// No full reset cycle: period write plus start only.
	want := []string{
		wr(LayoutPIT64B.MSBPR, 0),
		wr(LayoutPIT64B.LSBPR, 12345),
		wr(LayoutPIT64B.CR, CRStart),
	}
	assertLog(t, f.dev.log[mark:], want)
}

func TestSetNextEventOutsideOneShot(t *testing.T) {
	for _, prep := range []func(*ClockEvent){
		func(*ClockEvent) {},                    // shutdown (initial)
		func(ce *ClockEvent) { ce.SetPeriodic() }, // periodic
	} {
		ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
		prep(ce)
		mark := len(f.dev.log)

		err := ce.SetNextEvent(999)
		if !errors.Is(err, ErrInvalidMode) {
			t.Errorf("state %s: error = %v, want ErrInvalidMode", ce.State(), err)
		}
		if len(f.dev.log) != mark {
			t.Errorf("state %s: registers touched by rejected SetNextEvent", ce.State())
		}
	}
}

func TestShutdownIsIdempotentCancellation(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
	ce.SetOneShot()
	if err := ce.SetNextEvent(5000); err != nil {
		t.Fatalf("SetNextEvent failed: %v", err)
	}

	ce.SetShutdown()
	if f.dev.running {
		t.Error("device still counting after shutdown")
	}
	if ce.State() != EventShutdown {
		t.Errorf("state = %s, want shutdown", ce.State())
	}

	// Callable again from shutdown with no effect beyond the reset.
	ce.SetShutdown()
	if ce.State() != EventShutdown {
		t.Errorf("state after second shutdown = %s", ce.State())
	}
}

func TestSuspendResumePeriodic(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
	ce.SetPeriodic()
	if f.dev.period != 25000 {
		t.Fatalf("periodic reload = %d, want 25000", f.dev.period)
	}

	ce.Suspend()
	if f.dev.running {
		t.Error("device still counting while suspended")
	}
	if f.clk.enabled {
		t.Error("clock still enabled while suspended")
	}

	if err := ce.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if !f.clk.enabled {
		t.Error("clock not re-enabled on resume")
	}
	if ce.State() != EventPeriodic {
		t.Errorf("state after resume = %s, want periodic", ce.State())
	}
	if f.dev.period != 25000 {
		t.Errorf("reload after resume = %d, want 25000 again", f.dev.period)
	}
	if f.dev.mode&MRCont == 0 {
		t.Error("continuous mode not restored")
	}
	if !f.dev.running {
		t.Error("device not restarted on resume")
	}
}

func TestSuspendResumeOneShot(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
	ce.SetOneShot()

	ce.Suspend()
	if err := ce.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	if ce.State() != EventOneShot {
		t.Errorf("state after resume = %s, want oneshot", ce.State())
	}
	if f.dev.mode&MRSMod == 0 {
		t.Error("single-shot mode not restored")
	}
	if f.dev.imr&IntPeriod == 0 {
		t.Error("period interrupt not rearmed")
	}
}

func TestResumeClockFailure(t *testing.T) {
	ce, f, _ := newTestClockEvent(t, 2500000, 100, nil)
	ce.SetPeriodic()
	ce.Suspend()

	f.clk.enableErr = errors.New("pmc busy")
	err := ce.Resume()
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Errorf("Resume error = %v, want ErrDependencyUnavailable", err)
	}
}

func TestInterruptDispatch(t *testing.T) {
	var fired []*ClockEvent
	ce, f, _ := newTestClockEvent(t, 2500000, 100, func(e *ClockEvent) {
		fired = append(fired, e)
	})
	ce.SetPeriodic()

	// One full period elapses.
	f.dev.tick(25000)

	if !f.irq.trigger() {
		t.Fatal("interrupt reported as not handled")
	}
	if len(fired) != 1 || fired[0] != ce {
		t.Fatalf("handler dispatch: got %v", fired)
	}

	// Status bit clears on the ISR read, so a spurious trigger is not ours.
	if f.irq.trigger() {
		t.Error("spurious interrupt reported as handled")
	}
	if len(fired) != 1 {
		t.Error("handler invoked for spurious interrupt")
	}
}

func TestInterruptOwnership(t *testing.T) {
	handled := 0
	ce, f, _ := newTestClockEvent(t, 2500000, 100, func(*ClockEvent) { handled++ })
	ce.SetPeriodic()
	f.dev.expire()

	// An instance that is not the registry's registered owner must report
	// "not mine" even though the status bit is set, without consuming it.
	orphan := *ce
	if (&orphan).handleInterrupt() {
		t.Error("non-registered instance claimed the interrupt")
	}
	if handled != 0 {
		t.Error("handler invoked through non-registered instance")
	}
	if f.dev.isr&IntPeriod == 0 {
		t.Error("status bit consumed by non-owner")
	}

	// The registered owner still takes it.
	if !ce.handleInterrupt() {
		t.Error("registered owner rejected its interrupt")
	}
	if handled != 1 {
		t.Errorf("handler invocations = %d, want 1", handled)
	}
}
