//go:build sama7g5

package main

import (
	"runtime/volatile"
	"unsafe"

	"samhal/core"
)

// SAMA7G5 PMC peripheral clock control
const (
	pmcBase = 0xe0018000
	pmcPCR  = pmcBase + 0x88 // Peripheral Control Register

	pcrPIDMask = 0x7F
	pcrGCKEN   = 1 << 28 // generic clock enable
	pcrEN      = 1 << 29 // peripheral clock enable
	pcrDIVMask = 0x3 << 14
	pcrCMD     = 1 << 31 // 1 = write, 0 = read
)

var pmcPCRReg = (*volatile.Register32)(unsafe.Pointer(uintptr(pmcPCR)))

// pmcClock gates one peripheral's clock through the PMC. The generic clock
// is assumed to be parented and divided by early boot firmware; rate is the
// resulting frequency at the peripheral.
type pmcClock struct {
	pid  uint32
	rate uint32
}

func requestPMCClock(pid, rate uint32) core.Clock {
	return &pmcClock{pid: pid, rate: rate}
}

func (c *pmcClock) Enable() error {
	pmcPCRReg.Set(pcrCMD | pcrGCKEN | pcrEN | (c.pid & pcrPIDMask))
	return nil
}

func (c *pmcClock) Disable() {
	pmcPCRReg.Set(pcrCMD | (c.pid & pcrPIDMask))
}

func (c *pmcClock) Rate() uint32 {
	return c.rate
}

// Release is a no-op: PMC slots are not reference counted here.
func (c *pmcClock) Release() {}
