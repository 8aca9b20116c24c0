package core

// RegisterLayout maps PIT64 register names to offsets inside the mapped
// window. The current PIT64B block and the original PIT64 block expose the
// same registers at different offsets; the driver is parameterized by this
// table instead of being duplicated per variant.
type RegisterLayout struct {
	CR     uint32 // Control Register
	MR     uint32 // Mode Register
	LSBPR  uint32 // LSB Period Register
	MSBPR  uint32 // MSB Period Register
	IER    uint32 // Interrupt Enable Register
	IDR    uint32 // Interrupt Disable Register
	IMR    uint32 // Interrupt Mask Register
	ISR    uint32 // Interrupt Status Register
	LSBCVR uint32 // Timer LSB Current Value Register
	MSBCVR uint32 // Timer MSB Current Value Register
	WPMR   uint32 // Write Protection Mode Register
	WPSR   uint32 // Write Protection Status Register
}

// LayoutPIT64B is the current block (SAMA7G5 and later).
var LayoutPIT64B = &RegisterLayout{
	CR:     0x00,
	MR:     0x04,
	LSBPR:  0x08,
	MSBPR:  0x0C,
	IER:    0x10,
	IDR:    0x14,
	IMR:    0x18,
	ISR:    0x1C,
	LSBCVR: 0x20,
	MSBCVR: 0x24,
	WPMR:   0xE4,
	WPSR:   0xE8,
}

// LayoutPIT64 is the older block found on earlier silicon; the period and
// value registers sit two words higher to leave room for reserved words
// after the mode register.
var LayoutPIT64 = &RegisterLayout{
	CR:     0x00,
	MR:     0x04,
	LSBPR:  0x10,
	MSBPR:  0x14,
	IER:    0x18,
	IDR:    0x1C,
	IMR:    0x20,
	ISR:    0x24,
	LSBCVR: 0x28,
	MSBCVR: 0x2C,
	WPMR:   0xE4,
	WPSR:   0xE8,
}

// Control register bits.
const (
	CRStart = 1 << 0 // start counting
	CRSWRst = 1 << 8 // software reset
)

// Mode register bits. The PRES field stores the prescaler minus one.
const (
	MRCont      = 1 << 0 // continuous (periodic) mode
	MRSGClk     = 1 << 3 // select generic clock input
	MRSMod      = 1 << 4 // single-shot (software reload) mode
	MRPresShift = 8
	MRPresMask  = 0xF << MRPresShift
)

// Interrupt enable/disable/mask/status bits, identical in all four registers.
const (
	IntPeriod   = 1 << 0 // period expired
	IntOverrun  = 1 << 1 // counter overrun
	IntSecurity = 1 << 4 // security/safety event
)

// Write protection bits.
const (
	WPMREnable    = 1 << 0
	WPMRIntEnable = 1 << 1
	WPMRCtlEnable = 1 << 2
	WPMRFirstErr  = 1 << 4

	WPSRViolation = 1 << 0
	WPSRClockGlitch = 1 << 1
	WPSRSequenceErr = 1 << 2
	WPSRSoftwareErr = 1 << 3
)
