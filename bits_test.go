package upd72020x

import (
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
)

func TestWriteMasked(t *testing.T) {
	pb := &conntest.Playback{
		Ops: []conntest.IO{
			{W: []byte{regROMControl}, R: []byte{0x31, 0x80}},
			{W: []byte{regROMControl, 0x31, 0x83}},
		},
		D:         conn.Half,
		DontPanic: true,
	}
	cs := NewConfigSpace(pb)
	if err := cs.WriteMasked(regROMControl, setMask, setMask); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}

func TestWriteMaskedIgnoresBitsOutsideMask(t *testing.T) {
	pb := &conntest.Playback{
		Ops: []conntest.IO{
			{W: []byte{regROMControl}, R: []byte{0xFF, 0x00}},
			{W: []byte{regROMControl, 0x8F, 0x00}},
		},
		D:         conn.Half,
		DontPanic: true,
	}
	cs := NewConfigSpace(pb)
	if err := cs.WriteMasked(regROMControl, resultMask, 0xFF0F); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}

func TestWriteMaskedReadFailure(t *testing.T) {
	s := newSim()
	s.readFails[regROMControl] = 1
	cs := NewConfigSpace(s)

	err := cs.WriteMasked(regROMControl, 1<<romAccessEnable, 1<<romAccessEnable)
	if !IsIOError(err) {
		t.Fatalf("got: %v, want IOError", err)
	}
	if s.writes != 0 {
		t.Errorf("%d writes after a failed read, want none", s.writes)
	}
}

func TestBits(t *testing.T) {
	s := newSim()
	cs := NewConfigSpace(s)

	set, err := cs.ReadBit(regROMControl, romExists)
	if err != nil {
		t.Fatal(err)
	}
	if !set {
		t.Errorf("exists bit reads 0")
	}

	if err := cs.WriteBit(regFWDownloadControl, fwDownloadLock, true); err != nil {
		t.Fatal(err)
	}
	v, err := cs.ReadMasked(regFWDownloadControl, 0xFFFF)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v, uint16(1<<fwDownloadLock); got != want {
		t.Errorf("got: %#04x, want: %#04x", got, want)
	}

	if err := cs.WriteBit(regFWDownloadControl, fwDownloadLock, false); err != nil {
		t.Fatal(err)
	}
	set, err = cs.ReadBit(regFWDownloadControl, fwDownloadLock)
	if err != nil {
		t.Fatal(err)
	}
	if set {
		t.Errorf("lock bit still set")
	}
}

func TestControlStatusString(t *testing.T) {
	for _, tc := range []struct {
		v    ControlStatus
		want string
	}{
		{0x0000, "0000000000000000 RESULT=invalid"},
		{0x8011, "1000000000010001 EXISTS,ENABLE,RESULT=success"},
		{0x0320, "0000001100100000 SET1,SET0,RESULT=error"},
		{0x0C70, "0000110001110000 GET1,GET0,RESULT=reserved(0x70)"},
	} {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("%#04x: got: %q, want: %q", uint16(tc.v), got, tc.want)
		}
	}
}
