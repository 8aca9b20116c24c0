package core

// RegisterWindow is a mapped block of device registers. Accesses are direct,
// uncached and issued in program order; implementations must not buffer or
// reorder them.
type RegisterWindow interface {
	Read32(offset uint32) uint32
	Write32(offset uint32, value uint32)

	// Unmap releases the mapping. The window must not be used afterwards.
	Unmap()
}

// Clock is a gateable input clock feeding a peripheral block.
type Clock interface {
	Enable() error
	Disable()

	// Rate returns the clock rate in Hz.
	Rate() uint32

	// Release returns the handle to its provider. The clock must already be
	// disabled.
	Release()
}

// IRQHandler services one interrupt. It returns true when the interrupt was
// raised by its device, false so other handlers on a shared line get a turn.
type IRQHandler func() bool

// IRQLine is a resolved interrupt line.
type IRQLine interface {
	// Attach binds h to the line and unmasks it.
	Attach(name string, h IRQHandler) error

	// Detach masks the line and removes the handler.
	Detach()

	// Dispose detaches any handler and releases the line mapping.
	Dispose()
}

// UpdateBits read-modify-writes the masked field of a register.
func UpdateBits(w RegisterWindow, offset, mask, value uint32) {
	v := w.Read32(offset)
	w.Write32(offset, v&^mask|value&mask)
}
