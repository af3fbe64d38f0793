package upd72020x

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

const (
	vendorRenesas   = 0x1912
	deviceUPD720201 = 0x0014
	deviceUPD720202 = 0x0015
)

// DefaultSysfsRoot is where Linux exposes PCI configuration space files.
const DefaultSysfsRoot = "/sys/bus/pci/devices"

// Address is a PCI bus/device/function in domain 0.
type Address struct {
	Bus      uint8
	Device   uint8 // 0..31
	Function uint8 // 0..7
}

func (a Address) String() string {
	return fmt.Sprintf("%02x:%02x.%x", a.Bus, a.Device, a.Function)
}

// ParseAddress parses "BB:DD.F", optionally prefixed with the "0000:"
// domain, as printed by lspci. All fields are hex.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0000:")
	bus, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Address{}, errors.NotValidf("PCI address %q", s)
	}
	dev, fn, ok := strings.Cut(rest, ".")
	if !ok {
		return Address{}, errors.NotValidf("PCI address %q", s)
	}
	b, err := strconv.ParseUint(bus, 16, 8)
	if err != nil {
		return Address{}, errors.Annotatef(err, "bus in %q", s)
	}
	d, err := strconv.ParseUint(dev, 16, 8)
	if err != nil || d > 31 {
		return Address{}, errors.NotValidf("device in %q", s)
	}
	f, err := strconv.ParseUint(fn, 16, 8)
	if err != nil || f > 7 {
		return Address{}, errors.NotValidf("function in %q", s)
	}
	return Address{Bus: uint8(b), Device: uint8(d), Function: uint8(f)}, nil
}

// Config selects the controller to open.
type Config struct {
	Address Address
	// SysfsRoot defaults to DefaultSysfsRoot.
	SysfsRoot string
}

func (c Config) path() string {
	root := c.SysfsRoot
	if root == "" {
		root = DefaultSysfsRoot
	}
	return filepath.Join(root, "0000:"+c.Address.String(), "config")
}

// Device is an opened uPD720201 or uPD720202.
type Device struct {
	*Programmer

	f        *os.File
	deviceID uint16
}

// Open opens the configuration space of the controller at cfg.Address and
// checks that it is a supported chip.
func Open(cfg Config) (*Device, error) {
	path := cfg.path()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "can't open PCI configuration file")
	}
	d, err := newDevice(f, path)
	if err != nil {
		f.Close()
		return nil, errors.Trace(err)
	}
	return d, nil
}

func newDevice(f *os.File, name string) (*Device, error) {
	p := New(newFileConn(name, f))
	vendor, err := p.cs.Read16(0x00)
	if err != nil {
		return nil, errors.Trace(err)
	}
	device, err := p.cs.Read16(0x02)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if vendor != vendorRenesas || (device != deviceUPD720201 && device != deviceUPD720202) {
		return nil, &WrongDeviceError{VendorID: vendor, DeviceID: device}
	}
	return &Device{Programmer: p, f: f, deviceID: device}, nil
}

// Chip returns the name of the controller model.
func (d *Device) Chip() string {
	if d.deviceID == deviceUPD720202 {
		return "uPD720202"
	}
	return "uPD720201"
}

func (d *Device) Close() error {
	return d.f.Close()
}
