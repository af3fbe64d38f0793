package upd72020x

import "github.com/juju/errors"

// ReadMasked returns the bits of the 16-bit register reg selected by mask.
func (cs *ConfigSpace) ReadMasked(reg uint8, mask uint16) (uint16, error) {
	v, err := cs.Read16(reg)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return v & mask, nil
}

// WriteMasked replaces the bits selected by mask with the same bits of value
// and leaves the others as read. The read-modify-write is not atomic; the
// caller must be the only user of the device. Nothing is written if the read
// fails.
func (cs *ConfigSpace) WriteMasked(reg uint8, mask, value uint16) error {
	v, err := cs.Read16(reg)
	if err != nil {
		return errors.Trace(err)
	}
	v &^= mask
	v |= value & mask
	return errors.Trace(cs.Write16(reg, v))
}

func (cs *ConfigSpace) ReadBit(reg uint8, bit uint) (bool, error) {
	v, err := cs.ReadMasked(reg, 1<<bit)
	if err != nil {
		return false, errors.Trace(err)
	}
	return v != 0, nil
}

func (cs *ConfigSpace) WriteBit(reg uint8, bit uint, set bool) error {
	var v uint16
	if set {
		v = 1 << bit
	}
	return errors.Trace(cs.WriteMasked(reg, 1<<bit, v))
}
