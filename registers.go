package upd72020x

import (
	"fmt"
	"strings"
)

// Vendor specific configuration space registers.
// [uPD720201|6.1 PCI Configuration Registers]
const (
	regFWVersion         = 0x6C
	regROMInfo           = 0xEC
	regROMConfig         = 0xF0
	regFWDownloadControl = 0xF4
	regROMControl        = 0xF6
	regData0             = 0xF8
	regData1             = 0xFC
)

// Bits of the External ROM Access Control and Status register.
// [uPD720201|6.1.30]
const (
	romAccessEnable = 0
	romErase        = 1
	romReload       = 2
	romSetData0     = 8
	romSetData1     = 9
	romGetData0     = 10
	romGetData1     = 11
	romExists       = 15
)

// Bits of the FW Download Control and Status register.
// [uPD720201|6.1.28]
const (
	fwDownloadEnable = 0
	fwDownloadLock   = 1
	fwSetData0       = 8
	fwSetData1       = 9
)

// romAccessMagic must be in DATA0 when access enable is set ("ROMS").
const romAccessMagic = 0x53524F4D

// Result is the 3-bit result code in bits 4..6 of both control registers.
type Result uint16

const (
	resultMask = 0x0070

	ResultInvalid Result = 0x0000
	ResultSuccess Result = 0x0010
	ResultError   Result = 0x0020
)

func (r Result) String() string {
	switch r {
	case ResultInvalid:
		return "invalid"
	case ResultSuccess:
		return "success"
	case ResultError:
		return "error"
	}
	return fmt.Sprintf("reserved(%#x)", uint16(r))
}

// ControlStatus is a raw value of either control and status register.
//
//	Bits  | ROM_CTRL_STATUS (0xF6)   | FW_DLOAD_CTRL_STATUS (0xF4)
//	------+--------------------------+----------------------------
//	15    | External ROM Exists      | Reserved
//	11:10 | Get DATA1, Get DATA0     | Reserved
//	9:8   | Set DATA1, Set DATA0     | Set DATA1, Set DATA0
//	6:4   | Result Code              | Result Code
//	2     | Reload                   | Reserved
//	1     | Chip Erase               | FW Download Lock
//	0     | External ROM Access      | FW Download Enable
type ControlStatus uint16

func (cs ControlStatus) Exists() bool        { return cs&(1<<romExists) != 0 }
func (cs ControlStatus) GetData1() bool      { return cs&(1<<romGetData1) != 0 }
func (cs ControlStatus) GetData0() bool      { return cs&(1<<romGetData0) != 0 }
func (cs ControlStatus) SetData1() bool      { return cs&(1<<romSetData1) != 0 }
func (cs ControlStatus) SetData0() bool      { return cs&(1<<romSetData0) != 0 }
func (cs ControlStatus) Reload() bool        { return cs&(1<<romReload) != 0 }
func (cs ControlStatus) Erase() bool         { return cs&(1<<romErase) != 0 }
func (cs ControlStatus) AccessEnabled() bool { return cs&(1<<romAccessEnable) != 0 }
func (cs ControlStatus) Result() Result      { return Result(cs & resultMask) }
func (cs ControlStatus) Bit(n uint) bool     { return cs&(1<<n) != 0 }

func (cs ControlStatus) String() string {
	b := fmt.Sprintf("%016b", uint16(cs))
	s := []string{}
	if cs.Exists() {
		s = append(s, "EXISTS")
	}
	if cs.GetData1() {
		s = append(s, "GET1")
	}
	if cs.GetData0() {
		s = append(s, "GET0")
	}
	if cs.SetData1() {
		s = append(s, "SET1")
	}
	if cs.SetData0() {
		s = append(s, "SET0")
	}
	if cs.Reload() {
		s = append(s, "RELOAD")
	}
	if cs.Erase() {
		s = append(s, "ERASE")
	}
	if cs.AccessEnabled() {
		s = append(s, "ENABLE")
	}
	s = append(s, "RESULT="+cs.Result().String())
	return b + " " + strings.Join(s, ",")
}

// dataReg returns the data register for a lane.
func dataReg(l lane) uint8 {
	if l == lane1 {
		return regData1
	}
	return regData0
}

// controlRegister names one of the two control and status registers that a
// transfer can be pumped through.
type controlRegister struct {
	name     string
	offset   uint8
	setData0 uint
}

func (r controlRegister) String() string { return fmt.Sprintf("%s(%#02x)", r.name, r.offset) }

var (
	romControl = controlRegister{name: "ROM_CTRL_STATUS", offset: regROMControl, setData0: romSetData0}
	fwControl  = controlRegister{name: "FW_DLOAD_CTRL_STATUS", offset: regFWDownloadControl, setData0: fwSetData0}
)
