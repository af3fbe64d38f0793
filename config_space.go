package upd72020x

import (
	"encoding/binary"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/mmr"
)

// ConfigSpace reads and writes registers of one PCI function's
// configuration space. Every call goes to the device; nothing is cached.
type ConfigSpace struct {
	dev mmr.Dev8
}

// NewConfigSpace wraps c, which must address registers with the first
// written byte. The controller is little endian.
func NewConfigSpace(c conn.Conn) *ConfigSpace {
	return &ConfigSpace{dev: mmr.Dev8{Conn: c, Order: binary.LittleEndian}}
}

func (cs *ConfigSpace) String() string { return cs.dev.Conn.String() }

func (cs *ConfigSpace) Read16(off uint8) (uint16, error) {
	v, err := cs.dev.ReadUint16(off)
	if err != nil {
		return 0, &IOError{Op: "read16", Offset: off, Err: err}
	}
	return v, nil
}

func (cs *ConfigSpace) Write16(off uint8, v uint16) error {
	if err := cs.dev.WriteUint16(off, v); err != nil {
		return &IOError{Op: "write16", Offset: off, Err: err}
	}
	return nil
}

func (cs *ConfigSpace) Read32(off uint8) (uint32, error) {
	v, err := cs.dev.ReadUint32(off)
	if err != nil {
		return 0, &IOError{Op: "read32", Offset: off, Err: err}
	}
	return v, nil
}

func (cs *ConfigSpace) Write32(off uint8, v uint32) error {
	if err := cs.dev.WriteUint32(off, v); err != nil {
		return &IOError{Op: "write32", Offset: off, Err: err}
	}
	return nil
}
