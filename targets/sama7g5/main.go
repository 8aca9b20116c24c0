//go:build sama7g5

package main

import (
	"samhal/core"
)

var (
	// jiffies counts clockevent ticks since boot.
	jiffies uint64

	registry *core.Registry
)

func main() {
	tk := core.NewTimekeeper()
	registry = core.NewRegistry(tk)

	if err := registry.Instantiate(clockSourceDescriptor(), nil); err != nil {
		panic(err)
	}

	cfg := &core.EventConfig{
		TickHz:  core.DefaultTickHz,
		Handler: func(*core.ClockEvent) { jiffies++ },
	}
	if err := registry.Instantiate(clockEventDescriptor(), cfg); err != nil {
		panic(err)
	}
	registry.ClockEvent().SetPeriodic()

	initUSB()
	core.ProbeXDMAC(mapWindow(xdmac0Base))

	// The monitor loop never returns: the console UART read side polls.
	mon := core.NewMonitor()
	mon.AddWindow(winPIT64B0, mapWindow(pit64b0Base))
	mon.AddWindow(winPIT64B1, mapWindow(pit64b1Base))
	mon.AddWindow(winSFR, mapWindow(sfrBase))
	mon.AddWindow(winRSTC, mapWindow(rstcBase))
	mon.AddWindow(winXDMAC0, mapWindow(xdmac0Base))
	mon.SetCounterSource(registry.ClockSource().Read)
	if err := mon.Serve(consoleUART{}); err != nil {
		panic(err)
	}
}

// initUSB brings the USB-A host port's PHY out of reset.
func initUSB() {
	phy, err := core.NewUSBPHY(mapWindow(sfrBase), mapWindow(rstcBase), 0)
	if err != nil {
		panic(err)
	}
	phy.Init()
	phy.SetMode(core.PHYModeHost, false)
	phy.PowerOn()
}
