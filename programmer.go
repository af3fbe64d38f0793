package upd72020x

import (
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
	"periph.io/x/conn/v3"
)

// DefaultROMSize is the EEPROM size read when the caller has no better
// figure.
const DefaultROMSize = 0x10000

// Waits between the phases of a transfer, for ROM arbitration and for the
// controller to finish with the data registers.
const (
	downloadPhaseDelay = 2 * time.Second
	uploadPhaseDelay   = time.Second
)

// Programmer runs EEPROM and firmware transfers against one controller.
//
// The handshake has no session identifiers: a Programmer must be the only
// user of its device for the duration of a transfer and is not safe for
// concurrent use. A failed transfer leaves the gates as they were at the
// failing step; call ROM().Disable() or ReleaseFirmware() before retrying.
type Programmer struct {
	cs    *ConfigSpace
	rom   *ROMGate
	fw    firmwareGate
	sleep func(time.Duration)
}

// New returns a Programmer for the configuration space behind c.
func New(c conn.Conn) *Programmer {
	return newProgrammer(NewConfigSpace(c), time.Sleep)
}

func newProgrammer(cs *ConfigSpace, sleep func(time.Duration)) *Programmer {
	return &Programmer{
		cs:    cs,
		rom:   newROMGate(cs, sleep),
		fw:    firmwareGate{cs: cs},
		sleep: sleep,
	}
}

func (p *Programmer) pump() *dwordPump {
	return &dwordPump{
		cs:   p.cs,
		poll: newPoller(p.sleep),
		wait: func() { p.sleep(pollInterval) },
	}
}

// ConfigSpace returns the register accessor the Programmer drives.
func (p *Programmer) ConfigSpace() *ConfigSpace { return p.cs }

// ROM returns the external ROM access gate.
func (p *Programmer) ROM() *ROMGate { return p.rom }

// ReleaseFirmware clears FW Download Enable.
func (p *Programmer) ReleaseFirmware() error { return errors.Trace(p.fw.Disable()) }

// DownloadROM copies size bytes of EEPROM content to w. A size that is not
// a multiple of 8 is truncated to one.
func (p *Programmer) DownloadROM(w io.Writer, size uint32) error {
	glog.Infof("enabling EEPROM read")
	if err := p.rom.Enable(); err != nil {
		return errors.Annotatef(err, "enable ROM access")
	}
	p.sleep(downloadPhaseDelay)

	// Ask for the first dword of each lane.
	if err := p.cs.WriteBit(regROMControl, romGetData0, true); err != nil {
		return errors.Annotatef(err, "set GET_DATA0")
	}
	if err := p.cs.WriteBit(regROMControl, romGetData1, true); err != nil {
		return errors.Annotatef(err, "set GET_DATA1")
	}
	p.sleep(downloadPhaseDelay)

	glog.Infof("performing EEPROM read of %#x bytes", size)
	n, err := p.pump().read(romControl, size, w)
	if err != nil {
		return errors.Annotatef(err, "EEPROM read")
	}
	glog.V(1).Infof("read %d dwords", n)

	glog.Infof("finishing EEPROM read")
	return errors.Annotatef(p.rom.Disable(), "disable ROM access")
}

// UploadROM writes the image in r to the EEPROM. r must hold a whole number
// of dwords.
func (p *Programmer) UploadROM(r io.Reader) error {
	return p.upload("EEPROM write", p.rom, romControl, r)
}

// UploadFirmware writes the image in r to the controller's firmware
// download RAM. No EEPROM is required.
func (p *Programmer) UploadFirmware(r io.Reader) error {
	return p.upload("firmware upload", p.fw, fwControl, r)
}

func (p *Programmer) upload(what string, g gate, ctrl controlRegister, r io.Reader) error {
	glog.Infof("enabling %s", what)
	if err := g.Enable(); err != nil {
		return errors.Annotatef(err, "enable %s", what)
	}
	p.sleep(uploadPhaseDelay)

	glog.Infof("performing %s", what)
	n, err := p.pump().write(ctrl, r)
	if err != nil {
		return errors.Annotatef(err, "%s", what)
	}
	glog.V(1).Infof("wrote %d dwords", n)
	p.sleep(uploadPhaseDelay)

	glog.Infof("finishing %s", what)
	if err := g.Disable(); err != nil {
		return errors.Annotatef(err, "disable %s", what)
	}
	p.sleep(uploadPhaseDelay)

	glog.Infof("confirming %s", what)
	if err := awaitResult(p.cs, newPoller(p.sleep), ctrl); err != nil {
		return errors.Annotatef(err, "%s", what)
	}
	return nil
}

// FirmwareVersion returns the FW Version register.
func (p *Programmer) FirmwareVersion() (uint32, error) {
	v, err := p.cs.Read32(regFWVersion)
	return v, errors.Trace(err)
}

// ROMInfo returns the JEDEC identification the controller read from the
// EEPROM.
func (p *Programmer) ROMInfo() (uint32, error) {
	v, err := p.cs.Read32(regROMInfo)
	return v, errors.Trace(err)
}

// ROMConfig returns the ROM timing parameter register.
func (p *Programmer) ROMConfig() (uint32, error) {
	v, err := p.cs.Read32(regROMConfig)
	return v, errors.Trace(err)
}

// ROMStatus returns ROM_CTRL_STATUS.
func (p *Programmer) ROMStatus() (ControlStatus, error) {
	v, err := p.cs.Read16(regROMControl)
	return ControlStatus(v), errors.Trace(err)
}

// FirmwareStatus returns FW_DLOAD_CTRL_STATUS.
func (p *Programmer) FirmwareStatus() (ControlStatus, error) {
	v, err := p.cs.Read16(regFWDownloadControl)
	return ControlStatus(v), errors.Trace(err)
}

// ConfigureROM looks up the attached EEPROM in the parameter table and
// programs its timing into ROM_CONFIG. It returns the part found.
func (p *Programmer) ConfigureROM() (ROMParams, error) {
	info, err := p.ROMInfo()
	if err != nil {
		return ROMParams{}, errors.Trace(err)
	}
	params, ok := LookupROMParams(info)
	if !ok {
		return ROMParams{}, &UnknownROMError{Info: info}
	}
	glog.V(1).Infof("ROM %#08x is %s, setting ROM_CONFIG %#x", info, params.Name, params.Config)
	if err := p.cs.Write32(regROMConfig, params.Config); err != nil {
		return ROMParams{}, errors.Annotatef(err, "set ROM parameters")
	}
	return params, nil
}
