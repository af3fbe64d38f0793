package upd72020x

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

// romAccessSettle is the wait between the magic value and access enable.
const romAccessSettle = time.Millisecond

// gate grants exclusive access to one of the controller's transfer paths.
type gate interface {
	Enable() error
	Disable() error
}

type gateState int

const (
	gateDisabled gateState = iota
	gateEnabling
	gateEnabled
)

func (s gateState) String() string {
	switch s {
	case gateDisabled:
		return "disabled"
	case gateEnabling:
		return "enabling"
	case gateEnabled:
		return "enabled"
	}
	return fmt.Sprintf("gateState(%d)", int(s))
}

// ROMGate arbitrates external ROM access between the controller and the
// host through the access enable bit of ROM_CTRL_STATUS.
//
// A failed Enable may leave the controller holding access; Disable can be
// called in any state.
type ROMGate struct {
	cs    *ConfigSpace
	poll  poller
	sleep func(time.Duration)
	state gateState
}

func newROMGate(cs *ConfigSpace, sleep func(time.Duration)) *ROMGate {
	return &ROMGate{cs: cs, poll: newPoller(sleep), sleep: sleep}
}

// Exists reports whether an EEPROM is attached to the controller.
func (g *ROMGate) Exists() (bool, error) {
	ok, err := g.cs.ReadBit(regROMControl, romExists)
	return ok, errors.Trace(err)
}

// Enable requests external ROM access and waits until the controller has
// settled with no result code left from a previous run.
func (g *ROMGate) Enable() error {
	status, err := g.cs.Read16(regROMControl)
	if err != nil {
		return errors.Trace(err)
	}
	if !ControlStatus(status).Exists() {
		return &NotPresentError{Status: ControlStatus(status)}
	}

	g.state = gateEnabling
	if err := g.cs.Write32(regData0, romAccessMagic); err != nil {
		return errors.Annotatef(err, "write ROM access magic")
	}
	g.sleep(romAccessSettle)

	if err := g.cs.WriteBit(regROMControl, romAccessEnable, true); err != nil {
		return errors.Annotatef(err, "set ROM access enable")
	}
	err = g.poll.until("ROM access result to clear", func() (bool, error) {
		v, err := g.cs.Read16(regROMControl)
		return ControlStatus(v).Result() == ResultInvalid, err
	})
	if err != nil {
		return errors.Trace(err)
	}
	g.state = gateEnabled
	glog.V(1).Infof("external ROM access enabled")
	return nil
}

// Disable releases external ROM access. The controller acts on it at once.
func (g *ROMGate) Disable() error {
	if err := g.cs.WriteBit(regROMControl, romAccessEnable, false); err != nil {
		return errors.Annotatef(err, "clear ROM access enable")
	}
	g.state = gateDisabled
	glog.V(1).Infof("external ROM access disabled")
	return nil
}

// Enabled reports whether the last Enable completed and no Disable followed.
func (g *ROMGate) Enabled() bool { return g.state == gateEnabled }

// firmwareGate is the FW Download Enable bit of FW_DLOAD_CTRL_STATUS. It has
// no handshake of its own.
type firmwareGate struct {
	cs *ConfigSpace
}

func (g firmwareGate) Enable() error {
	return errors.Annotatef(g.cs.WriteBit(regFWDownloadControl, fwDownloadEnable, true), "set FW download enable")
}

func (g firmwareGate) Disable() error {
	return errors.Annotatef(g.cs.WriteBit(regFWDownloadControl, fwDownloadEnable, false), "clear FW download enable")
}
