//go:build sama7g5

package main

import "samhal/core"

// SAMA7G5 memory map and interrupt wiring for the blocks the firmware uses.
// PIT64B0 serves as the system clocksource, PIT64B1 as the tick clockevent.
const (
	pit64b0Base = 0xe1800000
	pit64b1Base = 0xe1804000
	sfrBase     = 0xe1620000
	rstcBase    = 0xe3150000
	xdmac0Base  = 0xe1610000

	pit64b0PID = 70
	pit64b1PID = 71

	pit64b0IRQ = 70
	pit64b1IRQ = 71

	// Generic clock rate programmed for both PIT64B blocks at boot.
	pitGClkHz = 40000000
)

// Monitor window IDs on the debug link.
const (
	winPIT64B0 = 0
	winPIT64B1 = 1
	winSFR     = 2
	winRSTC    = 3
	winXDMAC0  = 4
)

func clockSourceDescriptor() *core.Descriptor {
	return &core.Descriptor{
		Name:   "pit64b0",
		Compat: core.CompatClockSource,
		MapRegisters: func() (core.RegisterWindow, error) {
			return mapWindow(pit64b0Base), nil
		},
		RequestClock: func() (core.Clock, error) {
			return requestPMCClock(pit64b0PID, pitGClkHz), nil
		},
	}
}

func clockEventDescriptor() *core.Descriptor {
	return &core.Descriptor{
		Name:   "pit64b1",
		Compat: core.CompatClockEvent,
		MapRegisters: func() (core.RegisterWindow, error) {
			return mapWindow(pit64b1Base), nil
		},
		RequestClock: func() (core.Clock, error) {
			return requestPMCClock(pit64b1PID, pitGClkHz), nil
		},
		ResolveIRQ: func() (core.IRQLine, error) {
			return resolveGICLine(pit64b1IRQ)
		},
	}
}
