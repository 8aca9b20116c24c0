package core

// SFR (Special Function Registers) offsets used by the USB PHY tuning path.
const (
	SFROhciICR = 0x00   // OHCI INT Configuration Register
	SFROhciISR = 0x04   // OHCI INT Status Register
	SFRWPMR    = 0xE4   // Write Protection Mode Register
	SFRDebug   = 0x200C // Debug Register
	SFRUTMI0R0 = 0x2040 // UTMI0 Configuration Register
	SFRUTMI0R1 = 0x2044 // UTMI1 Configuration Register
	SFRUTMI0R2 = 0x2048 // UTMI2 Configuration Register
)

// UTMI configuration bits.
const (
	SFRUTMIRxTxPreemAmpTune1x = 1 << 23 // TXPREEMPAMPTUNE 1x
	SFRUTMIRxVBus             = 1 << 25 // VBUS valid
)

// RSTC (reset controller) offsets and bits.
const (
	RSTCGrstr = 0xE4 // Generic Reset Register

	GrstrUSBRst1 = 1 << 4
	GrstrUSBRst2 = 1 << 5
	GrstrUSBRst3 = 1 << 6
)
