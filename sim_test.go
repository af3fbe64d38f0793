package upd72020x

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
)

const (
	setMask = 1<<romSetData0 | 1<<romSetData1
	getMask = 1<<romGetData0 | 1<<romGetData1
)

var errSimRead = errors.New("sim: read failed")

// simController emulates the vendor registers of a uPD72020x closely enough
// to run the handshake: set/get data bits are consumed as soon as they are
// raised, enabling ROM access clears the result code and dropping a gate
// after an upload publishes result.
type simController struct {
	regs [256]byte

	staleEnable bool   // result code is not cleared when ROM access is enabled
	stuck       uint16 // control bits the controller never clears
	result      Result // published when a gate drops
	rom         []uint32
	next        int
	readFails   map[uint8]int // failing reads left per offset
	writeFails  map[uint8]int // failing writes left per offset

	events     []string
	dataWrites []uint32
	dataLanes  []lane
	reads      map[uint8]int
	writes     int
}

func newSim() *simController {
	s := &simController{
		result:     ResultSuccess,
		readFails:  map[uint8]int{},
		writeFails: map[uint8]int{},
		reads:      map[uint8]int{},
	}
	s.put16(regROMControl, 1<<romExists)
	return s
}

func (s *simController) String() string      { return "sim" }
func (s *simController) Duplex() conn.Duplex { return conn.Half }

func (s *simController) get16(off uint8) uint16    { return binary.LittleEndian.Uint16(s.regs[off:]) }
func (s *simController) put16(off uint8, v uint16) { binary.LittleEndian.PutUint16(s.regs[off:], v) }
func (s *simController) put32(off uint8, v uint32) { binary.LittleEndian.PutUint32(s.regs[off:], v) }

// setStuck raises bits of a control register for good.
func (s *simController) setStuck(off uint8, bits uint16) {
	s.stuck |= bits
	s.put16(off, s.get16(off)|bits)
}

func (s *simController) Tx(w, r []byte) error {
	if len(w) == 0 {
		return errors.New("sim: no offset")
	}
	off := w[0]
	if int(off)+max(len(r), len(w)-1) > len(s.regs) {
		return fmt.Errorf("sim: offset %#x out of range", off)
	}
	if len(r) != 0 {
		s.reads[off]++
		if s.readFails[off] > 0 {
			s.readFails[off]--
			return errSimRead
		}
		copy(r, s.regs[off:])
		if len(r) == 4 && (off == regROMControl || off == regFWDownloadControl) {
			s.events = append(s.events, "status")
		}
		return nil
	}

	data := w[1:]
	s.writes++
	if s.writeFails[off] > 0 {
		s.writeFails[off]--
		return errors.New("sim: write failed")
	}
	switch {
	case (off == regData0 || off == regData1) && len(data) == 4:
		v := binary.LittleEndian.Uint32(data)
		if off == regData0 && v == romAccessMagic && !ControlStatus(s.get16(regROMControl)).AccessEnabled() {
			s.events = append(s.events, "magic")
		} else {
			l := lane0
			if off == regData1 {
				l = lane1
			}
			s.dataWrites = append(s.dataWrites, v)
			s.dataLanes = append(s.dataLanes, l)
			s.events = append(s.events, fmt.Sprintf("%s=%#08x", l, v))
		}
		copy(s.regs[off:], data)
	case (off == regROMControl || off == regFWDownloadControl) && len(data) == 2:
		s.control(off, s.get16(off), binary.LittleEndian.Uint16(data))
	default:
		copy(s.regs[off:], data)
	}
	return nil
}

func (s *simController) control(off uint8, old, v uint16) {
	prefix := "fw"
	if off == regROMControl {
		prefix = "rom"
		v = v&^(1<<romExists) | old&(1<<romExists)
	}

	if raised := v & setMask; raised != 0 {
		switch raised {
		case setMask:
			s.events = append(s.events, prefix+" SET0+SET1")
		case 1 << romSetData0:
			s.events = append(s.events, prefix+" SET0")
		default:
			s.events = append(s.events, prefix+" SET1")
		}
	}
	if off == regROMControl {
		for _, l := range [2]lane{lane0, lane1} {
			bit := uint16(1) << (romGetData0 + uint(l))
			if v&bit == 0 {
				continue
			}
			s.events = append(s.events, fmt.Sprintf("GET%d", l))
			var word uint32
			if s.next < len(s.rom) {
				word = s.rom[s.next]
			}
			s.next++
			s.put32(dataReg(l), word)
		}
	}

	enable := uint16(1 << romAccessEnable)
	switch {
	case old&enable == 0 && v&enable != 0:
		s.events = append(s.events, prefix+" enable")
		if off == regROMControl && !s.staleEnable {
			v &^= resultMask
		}
	case old&enable != 0 && v&enable == 0:
		s.events = append(s.events, prefix+" disable")
		v = v&^resultMask | uint16(s.result)
	}

	// Data bits are consumed at once unless stuck.
	v &^= (setMask | getMask) &^ s.stuck
	s.put16(off, v)
}

// sleepRecorder replaces time.Sleep.
type sleepRecorder struct {
	calls int
	total time.Duration
	long  []time.Duration // sleeps of a millisecond or more
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.calls++
	r.total += d
	if d >= time.Millisecond {
		r.long = append(r.long, d)
	}
}

func newSimProgrammer(s *simController) (*Programmer, *sleepRecorder) {
	rec := &sleepRecorder{}
	return newProgrammer(NewConfigSpace(s), rec.sleep), rec
}
