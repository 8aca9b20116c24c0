//go:build sama7g5

package main

import (
	"runtime/volatile"
	"unsafe"
)

// FLEXCOM3 in USART mode, the board's debug console. The boot ROM and early
// firmware already configured pins, mode and baud rate (115200).
const (
	flx3Base = 0xe1824000

	usCR   = 0x200
	usMR   = 0x204
	usCSR  = 0x224
	usRHR  = 0x228
	usTHR  = 0x22c
	usBRGR = 0x230

	csrRXRDY = 1 << 0
	csrTXRDY = 1 << 1
)

func flx3Reg(offset uint32) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(flx3Base + offset)))
}

// consoleUART is the monitor link transport. Reads are non-blocking: with no
// pending byte Read returns 0 so the serve loop can poll.
type consoleUART struct{}

func (consoleUART) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && flx3Reg(usCSR).Get()&csrRXRDY != 0 {
		p[n] = byte(flx3Reg(usRHR).Get())
		n++
	}
	return n, nil
}

func (consoleUART) Write(p []byte) (int, error) {
	for _, b := range p {
		for flx3Reg(usCSR).Get()&csrTXRDY == 0 {
		}
		flx3Reg(usTHR).Set(uint32(b))
	}
	return len(p), nil
}
