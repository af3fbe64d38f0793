package upd72020x

import (
	"fmt"

	"github.com/juju/errors"
)

// IOError reports a failed or short configuration space transfer.
type IOError struct {
	Op     string // "read16", "write32", ...
	Offset uint8
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("config space %s at 0x%02X: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotPresentError indicates that the controller reports no external ROM.
type NotPresentError struct {
	Status ControlStatus
}

func (e *NotPresentError) Error() string {
	return fmt.Sprintf("external ROM not present (ROM_CTRL_STATUS %#04x)", uint16(e.Status))
}

// TimeoutError indicates that a bounded poll ran out of iterations.
type TimeoutError struct {
	What  string
	Polls int
	// LastErr is the last read error seen while polling, if any.
	LastErr error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timeout waiting for %s after %d polls", e.What, e.Polls)
	if e.LastErr != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.LastErr)
	}
	return msg
}

// CorruptInputError indicates an image whose length is not a multiple of 4.
type CorruptInputError struct {
	Offset int64 // byte offset of the short dword
	Got    int   // bytes available there
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("corrupt image: could not get 4 bytes at offset %#x, only got %d", e.Offset, e.Got)
}

// UploadFailedError carries the last raw status observed by the completion
// check.
type UploadFailedError struct {
	Register string
	Status   uint32
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload did not succeed: %s = %#08x (result %s)",
		e.Register, e.Status, Result(e.Status&resultMask))
}

// WrongDeviceError indicates that the PCI function is not a uPD720201 or
// uPD720202.
type WrongDeviceError struct {
	VendorID uint16
	DeviceID uint16
}

func (e *WrongDeviceError) Error() string {
	return fmt.Sprintf("wrong vendor/device ID %04x:%04x: expected a uPD720201 or uPD720202", e.VendorID, e.DeviceID)
}

// UnknownROMError indicates a ROM part missing from the parameter table.
type UnknownROMError struct {
	Info uint32
}

func (e *UnknownROMError) Error() string {
	return fmt.Sprintf("unknown EEPROM %#08x: no parameters found", e.Info)
}

func IsIOError(err error) bool {
	_, ok := errors.Cause(err).(*IOError)
	return ok
}

func IsNotPresent(err error) bool {
	_, ok := errors.Cause(err).(*NotPresentError)
	return ok
}

func IsTimeout(err error) bool {
	_, ok := errors.Cause(err).(*TimeoutError)
	return ok
}

func IsCorruptInput(err error) bool {
	_, ok := errors.Cause(err).(*CorruptInputError)
	return ok
}

// IsUploadFailed reports whether err came from the completion check and
// returns the observed status.
func IsUploadFailed(err error) (uint32, bool) {
	e, ok := errors.Cause(err).(*UploadFailedError)
	if !ok {
		return 0, false
	}
	return e.Status, true
}
