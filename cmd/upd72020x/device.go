package main

import (
	"strconv"

	"github.com/gentam/upd72020x"
	"github.com/gentam/upd72020x/internal/flagenv"
	"github.com/spf13/pflag"
)

// deviceFlags selects the controller, either as one --addr or as the
// separate hex fields the lspci output shows.
type deviceFlags struct {
	addr  string
	bus   string
	dev   string
	fct   string
	sysfs string
}

func (df *deviceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&df.addr, "addr", "", "PCI address of the controller, BB:DD.F")
	fs.StringVarP(&df.bus, "bus", "b", "", "PCI bus (hex)")
	fs.StringVarP(&df.dev, "dev", "d", "", "PCI device (hex)")
	fs.StringVarP(&df.fct, "fct", "f", "0", "PCI function (hex)")
	fs.StringVar(&df.sysfs, "sysfs", upd72020x.DefaultSysfsRoot, "directory holding PCI device nodes")
}

// parse parses args into fs and applies environment overrides.
func parse(fs *pflag.FlagSet, args []string) {
	fs.Parse(args)
	if err := flagenv.ParseFlagSet(fs, envPrefix); err != nil {
		fatalUsage("%v", err)
	}
}

func (df *deviceFlags) config() (upd72020x.Config, error) {
	cfg := upd72020x.Config{SysfsRoot: df.sysfs}
	if df.addr != "" {
		a, err := upd72020x.ParseAddress(df.addr)
		if err != nil {
			return cfg, err
		}
		cfg.Address = a
		return cfg, nil
	}
	if df.bus == "" || df.dev == "" {
		return cfg, errNoAddress
	}
	a, err := upd72020x.ParseAddress(df.bus + ":" + df.dev + "." + df.fct)
	if err != nil {
		return cfg, err
	}
	cfg.Address = a
	return cfg, nil
}

type usageError string

func (e usageError) Error() string { return string(e) }

const errNoAddress = usageError("controller address is required: --addr BB:DD.F or -b bus -d dev")

// open opens and identifies the controller.
func (df *deviceFlags) open() *upd72020x.Device {
	cfg, err := df.config()
	if err != nil {
		fatalUsage("%v", err)
	}
	reportf("bus = %02x, dev = %02x, fct = %x", cfg.Address.Bus, cfg.Address.Device, cfg.Address.Function)

	d, err := upd72020x.Open(cfg)
	if err != nil {
		fatalf("ERROR: %v", err)
	}
	reportf("Found an %s chipset", d.Chip())

	fw, err := d.FirmwareVersion()
	if err != nil {
		fatalf("ERROR: unable to read configuration registers: %v", err)
	}
	reportf("got firmware version: %x", fw)
	return d
}

// prepareROM sets up ROM_CONFIG for the attached EEPROM. An EEPROM of a
// known type is mandatory for reading and writing it, not for a firmware
// upload.
func prepareROM(d *upd72020x.Device, required bool) {
	exists, err := d.ROM().Exists()
	if err != nil {
		fatalf("ERROR: %v", err)
	}
	if !exists {
		reportf("no EEPROM installed")
		if required {
			fatalf("ERROR: can not perform action")
		}
		return
	}
	reportf("EEPROM installed")

	info, err := d.ROMInfo()
	if err != nil {
		fatalf("ERROR: %v", err)
	}
	config, err := d.ROMConfig()
	if err != nil {
		fatalf("ERROR: %v", err)
	}
	reportf("got rom_info: %x", info)
	reportf("got rom_config: %x", config)

	params, err := d.ConfigureROM()
	if err != nil {
		reportf("%v", err)
		if required {
			fatalf("ERROR: can not perform action")
		}
		return
	}
	reportf("%s: setting rom_config: %x", params.Name, params.Config)
}

func parseHexSize(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}
