//go:build sama7g5

package main

import (
	"runtime/volatile"
	"unsafe"

	"samhal/core"
)

// mmioWindow exposes a peripheral register block at a fixed physical base.
type mmioWindow struct {
	base uintptr
}

func mapWindow(base uintptr) core.RegisterWindow {
	return &mmioWindow{base: base}
}

func (w *mmioWindow) reg(offset uint32) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(w.base + uintptr(offset)))
}

func (w *mmioWindow) Read32(offset uint32) uint32 {
	return w.reg(offset).Get()
}

func (w *mmioWindow) Write32(offset uint32, value uint32) {
	w.reg(offset).Set(value)
}

// Unmap is a no-op: the address space is flat, nothing was claimed.
func (w *mmioWindow) Unmap() {}
