package upd72020x

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
)

func writeConfigFile(t *testing.T, path string, vendor, device uint16) {
	t.Helper()
	b := make([]byte, 256)
	b[0], b[1] = byte(vendor), byte(vendor>>8)
	b[2], b[3] = byte(device), byte(device>>8)
	b[regROMControl+1] = 0x80 // EEPROM exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseAddress(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Address
	}{
		{"02:00.0", Address{Bus: 2}},
		{"0000:03:00.0", Address{Bus: 3}},
		{"ff:1f.7", Address{Bus: 0xff, Device: 0x1f, Function: 7}},
		{"a:1.1", Address{Bus: 0xa, Device: 1, Function: 1}},
	} {
		got, err := ParseAddress(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got: %+v, want: %+v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "02", "02:00", "100:00.0", "02:20.0", "02:00.8", "xx:00.0"} {
		if _, err := ParseAddress(in); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestAddressString(t *testing.T) {
	if got, want := (Address{Bus: 3, Device: 0x1f, Function: 1}).String(), "03:1f.1"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, filepath.Join(root, "0000:04:00.0", "config"), vendorRenesas, deviceUPD720202)

	d, err := Open(Config{Address: Address{Bus: 4}, SysfsRoot: root})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if got, want := d.Chip(), "uPD720202"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	exists, err := d.ROM().Exists()
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Errorf("EEPROM not reported")
	}
}

func TestOpenWrongDevice(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, filepath.Join(root, "0000:04:00.0", "config"), 0x8086, 0x1e31)

	_, err := Open(Config{Address: Address{Bus: 4}, SysfsRoot: root})
	wd, ok := errors.Cause(err).(*WrongDeviceError)
	if !ok {
		t.Fatalf("got: %v, want WrongDeviceError", err)
	}
	if wd.VendorID != 0x8086 || wd.DeviceID != 0x1e31 {
		t.Errorf("got %+v", wd)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(Config{Address: Address{Bus: 9}, SysfsRoot: t.TempDir()})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestConfigPath(t *testing.T) {
	cfg := Config{Address: Address{Bus: 2, Device: 0, Function: 0}}
	if got, want := cfg.path(), "/sys/bus/pci/devices/0000:02:00.0/config"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}
