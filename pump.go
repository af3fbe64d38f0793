package upd72020x

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

// lane is one of the two 32-bit data registers. Dwords alternate between
// them so the host can fill one while the controller drains the other.
type lane uint

const (
	lane0 lane = 0
	lane1 lane = 1
)

// laneOf returns the lane carrying the i-th dword of a transfer.
func laneOf(i int) lane { return lane(i & 1) }

func (l lane) String() string { return fmt.Sprintf("DATA%d", uint(l)) }

// armIndex is the dword at which the first two dwords are handed to the
// controller together. Later dwords are signaled one lane at a time.
// [uPD720201|5.2.2 External ROM Access]
const armIndex = 1

// dwordPump moves an image through the data registers of one control
// register.
type dwordPump struct {
	cs   *ConfigSpace
	poll poller
	wait func() // settle time between data register access and signaling
}

// write streams src to the controller, one dword per lane turn. src must be
// a whole number of dwords.
func (p *dwordPump) write(ctrl controlRegister, src io.Reader) (int, error) {
	var buf [4]byte
	for i := 0; ; i++ {
		n, err := io.ReadFull(src, buf[:])
		if err == io.EOF {
			return i, nil
		}
		if err == io.ErrUnexpectedEOF {
			return i, &CorruptInputError{Offset: int64(i) * 4, Got: n}
		}
		if err != nil {
			return i, errors.Annotatef(err, "read image")
		}

		l := laneOf(i)
		setBit := ctrl.setData0 + uint(l)
		what := fmt.Sprintf("%s set %s to clear", ctrl, l)
		if err := p.poll.until(what, bitClear(p.cs, ctrl.offset, setBit)); err != nil {
			return i, errors.Annotatef(err, "dword %d", i)
		}

		v := binary.LittleEndian.Uint32(buf[:])
		if err := p.cs.Write32(dataReg(l), v); err != nil {
			return i, errors.Annotatef(err, "dword %d", i)
		}
		glog.V(2).Infof("%s: dword %d -> %s: %#08x", ctrl, i, l, v)
		p.wait()

		if err := p.signal(ctrl, i); err != nil {
			return i, errors.Annotatef(err, "dword %d", i)
		}
	}
}

// signal hands the i-th dword to the controller.
func (p *dwordPump) signal(ctrl controlRegister, i int) error {
	switch {
	case i < armIndex:
		// Held until the second dword is in place.
		return nil
	case i == armIndex:
		both := uint16(1)<<ctrl.setData0 | uint16(1)<<(ctrl.setData0+1)
		return errors.Trace(p.cs.WriteMasked(ctrl.offset, both, both))
	default:
		return errors.Trace(p.cs.WriteBit(ctrl.offset, ctrl.setData0+uint(laneOf(i)), true))
	}
}

// read copies size bytes of ROM content to dst, one pair of dwords at a
// time. A size that is not a multiple of 8 loses its remainder.
func (p *dwordPump) read(ctrl controlRegister, size uint32, dst io.Writer) (int, error) {
	var buf [4]byte
	i := 0
	for pair := uint32(0); pair < size/8; pair++ {
		for _, l := range [2]lane{lane0, lane1} {
			getBit := romGetData0 + uint(l)
			what := fmt.Sprintf("%s get %s to clear", ctrl, l)
			if err := p.poll.until(what, bitClear(p.cs, ctrl.offset, getBit)); err != nil {
				return i, errors.Annotatef(err, "dword %d", i)
			}
			p.wait()

			v, err := p.cs.Read32(dataReg(l))
			if err != nil {
				return i, errors.Annotatef(err, "dword %d", i)
			}
			glog.V(2).Infof("%s: dword %d <- %s: %#08x", ctrl, i, l, v)
			binary.LittleEndian.PutUint32(buf[:], v)
			if _, err := dst.Write(buf[:]); err != nil {
				return i, errors.Annotatef(err, "write dword %d", i)
			}

			if err := p.cs.WriteBit(ctrl.offset, getBit, true); err != nil {
				return i, errors.Annotatef(err, "dword %d", i)
			}
			i++
		}
	}
	return i, nil
}
