package core

// XDMAC Register Definitions
// Extensible DMA Controller as integrated on SAMA7G5 class parts.
// Offsets follow the SAMA7G5 revision of the regmap; the global suspend
// registers moved compared to older parts.

// XDMAC Global Register Offsets
const (
	XDMAC_GTYPE = 0x00 // Global Type Register
	XDMAC_GCFG  = 0x04 // Global Configuration Register
	XDMAC_GWAC  = 0x08 // Global Weighted Arbiter Configuration Register
	XDMAC_GIE   = 0x0C // Global Interrupt Enable Register
	XDMAC_GID   = 0x10 // Global Interrupt Disable Register
	XDMAC_GIM   = 0x14 // Global Interrupt Mask Register
	XDMAC_GIS   = 0x18 // Global Interrupt Status Register
	XDMAC_GE    = 0x1C // Global Channel Enable Register
	XDMAC_GD    = 0x20 // Global Channel Disable Register
	XDMAC_GS    = 0x24 // Global Channel Status Register

	// Suspend/resume block, shifted up on SAMA7G5 silicon.
	XDMAC_GRS  = 0x30 // Global Channel Read Suspend Register
	XDMAC_GWS  = 0x38 // Global Write Suspend Register
	XDMAC_GRWS = 0x40 // Global Channel Read Write Suspend Register
	XDMAC_GRWR = 0x44 // Global Channel Read Write Resume Register
	XDMAC_GSWR = 0x48 // Global Channel Software Request Register
	XDMAC_GSWS = 0x4C // Global Channel Software Request Status Register
	XDMAC_GSWF = 0x50 // Global Channel Software Flush Request Register

	XDMAC_VERSION = 0xFFC // Version Register
)

// XDMAC Channel Register Offsets (relative to each channel base)
const (
	XDMAC_CIE  = 0x00 // Channel Interrupt Enable Register
	XDMAC_CID  = 0x04 // Channel Interrupt Disable Register
	XDMAC_CIM  = 0x08 // Channel Interrupt Mask Register
	XDMAC_CIS  = 0x0C // Channel Interrupt Status Register
	XDMAC_CSA  = 0x10 // Channel Source Address Register
	XDMAC_CDA  = 0x14 // Channel Destination Address Register
	XDMAC_CNDA = 0x18 // Channel Next Descriptor Address Register
	XDMAC_CNDC = 0x1C // Channel Next Descriptor Control Register
)

// Channel interrupt bits, identical in CIE, CID, CIM and CIS.
const (
	XDMAC_CI_BI   = 1 << 0 // End of block
	XDMAC_CI_LI   = 1 << 1 // End of linked list
	XDMAC_CI_DI   = 1 << 2 // End of disable
	XDMAC_CI_FI   = 1 << 3 // End of flush
	XDMAC_CI_RBEI = 1 << 4 // Read bus error
	XDMAC_CI_WBEI = 1 << 5 // Write bus error
	XDMAC_CI_ROI  = 1 << 6 // Request overflow
)

// XDMACChannels extracts the channel count from a GTYPE value.
func XDMACChannels(gtype uint32) uint32 {
	return (gtype & 0x1F) + 1
}

// XDMACFifoSize extracts the FIFO byte count from a GTYPE value.
func XDMACFifoSize(gtype uint32) uint32 {
	return (gtype >> 5) & 0x7FF
}

// XDMACRequests extracts the peripheral request count from a GTYPE value.
func XDMACRequests(gtype uint32) uint32 {
	return ((gtype >> 16) & 0x3F) + 1
}

// XDMACInfo describes one XDMAC instance's capabilities as reported by its
// type and version registers.
type XDMACInfo struct {
	Channels uint32
	FifoSize uint32
	Requests uint32
	Version  uint32
}

// ProbeXDMAC reads the capabilities of the controller behind w.
func ProbeXDMAC(w RegisterWindow) XDMACInfo {
	gtype := w.Read32(XDMAC_GTYPE)
	info := XDMACInfo{
		Channels: XDMACChannels(gtype),
		FifoSize: XDMACFifoSize(gtype),
		Requests: XDMACRequests(gtype),
		Version:  w.Read32(XDMAC_VERSION),
	}
	debugf("xdmac: %d channels, %d byte fifo, %d requests, version %#x",
		info.Channels, info.FifoSize, info.Requests, info.Version)
	return info
}
