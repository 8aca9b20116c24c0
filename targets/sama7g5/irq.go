//go:build sama7g5

package main

import (
	"errors"
	"runtime/volatile"
	"unsafe"

	"samhal/core"
)

// GIC-400 distributor, as wired on the SAMA7G5
const (
	gicdBase      = 0xe8c11000
	gicdISEnabler = 0x100 // set-enable, one bit per interrupt
	gicdICEnabler = 0x180 // clear-enable

	maxIRQ = 224
)

var errIRQTaken = errors.New("interrupt line already attached")

// irqHandlers dispatches by interrupt ID from the exception vector glue.
var irqHandlers [maxIRQ]core.IRQHandler

// dispatchIRQ runs the registered handler for id. Called with interrupts
// masked from the low-level IRQ entry path.
func dispatchIRQ(id uint32) {
	if id < maxIRQ && irqHandlers[id] != nil {
		irqHandlers[id]()
	}
}

func gicdReg(offset uint32) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(gicdBase + offset)))
}

// gicLine is one GIC interrupt line exposed through the HAL.
type gicLine struct {
	id   uint32
	name string
}

func resolveGICLine(id uint32) (core.IRQLine, error) {
	if id >= maxIRQ {
		return nil, errors.New("interrupt id out of range")
	}
	return &gicLine{id: id}, nil
}

func (l *gicLine) Attach(name string, h core.IRQHandler) error {
	if irqHandlers[l.id] != nil {
		return errIRQTaken
	}
	l.name = name
	irqHandlers[l.id] = h
	gicdReg(gicdISEnabler + (l.id/32)*4).Set(1 << (l.id % 32))
	return nil
}

func (l *gicLine) Detach() {
	gicdReg(gicdICEnabler + (l.id/32)*4).Set(1 << (l.id % 32))
	irqHandlers[l.id] = nil
	l.name = ""
}

func (l *gicLine) Dispose() {
	l.Detach()
}
