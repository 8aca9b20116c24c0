package core

import (
	"fmt"
	"time"
)

// PHYMode is the USB role the controller behind the PHY runs in.
type PHYMode uint8

const (
	PHYModeInvalid PHYMode = iota
	PHYModeHost
	PHYModeDevice
)

// phySettleDelay covers the datasheet minimum of 45 us between reset release
// and the first USB operation.
const phySettleDelay = 50 * time.Microsecond

var (
	utmiConfigReg = [3]uint32{SFRUTMI0R0, SFRUTMI0R1, SFRUTMI0R2}
	phyResetBit   = [3]uint32{GrstrUSBRst1, GrstrUSBRst2, GrstrUSBRst3}
)

// USBPHY drives one SAMA7G5 USB 2.0 PHY port through the shared SFR and
// reset-controller windows. It is pure bit set/clear sequencing keyed by the
// port index; there is no state machine.
type USBPHY struct {
	sfr  RegisterWindow
	rstc RegisterWindow
	port int
	mode PHYMode
}

// NewUSBPHY returns a handle for the given port (0 to 2). The SFR and RSTC
// windows are shared with other drivers and are not owned by the PHY.
func NewUSBPHY(sfr, rstc RegisterWindow, port int) (*USBPHY, error) {
	if sfr == nil || rstc == nil {
		return nil, fmt.Errorf("usb phy port %d: missing sfr or rstc window", port)
	}
	if port < 0 || port >= len(utmiConfigReg) {
		return nil, fmt.Errorf("usb phy: no such port %d", port)
	}
	return &USBPHY{sfr: sfr, rstc: rstc, port: port}, nil
}

// Port returns the PHY's port index.
func (p *USBPHY) Port() int {
	return p.port
}

// Init sets the transmitter pre-emphasis tuning to 1x.
func (p *USBPHY) Init() {
	UpdateBits(p.sfr, utmiConfigReg[p.port],
		SFRUTMIRxTxPreemAmpTune1x, SFRUTMIRxTxPreemAmpTune1x)
}

// SetMode records the USB role. In device mode it also forwards VBUS
// presence to the controller.
func (p *USBPHY) SetMode(mode PHYMode, vbus bool) {
	p.mode = mode
	if mode != PHYModeDevice {
		return
	}
	var v uint32
	if vbus {
		v = SFRUTMIRxVBus
	}
	UpdateBits(p.sfr, utmiConfigReg[p.port], SFRUTMIRxVBus, v)
}

// PowerOn takes the PHY out of reset and waits the settle time. The OHCI
// companion is clocked by PHY 1, so host mode releases that reset as well.
func (p *USBPHY) PowerOn() {
	if p.mode == PHYModeHost {
		UpdateBits(p.rstc, RSTCGrstr, GrstrUSBRst1, 0)
	}
	UpdateBits(p.rstc, RSTCGrstr, phyResetBit[p.port], 0)
	time.Sleep(phySettleDelay)
}

// PowerOff puts the PHY back in reset.
func (p *USBPHY) PowerOff() {
	UpdateBits(p.rstc, RSTCGrstr, phyResetBit[p.port], phyResetBit[p.port])
}
