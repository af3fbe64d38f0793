package main

import (
	"fmt"

	"github.com/gentam/upd72020x"
	"github.com/spf13/pflag"
)

func infoCommand(args []string) {
	fs := pflag.NewFlagSet("info", pflag.ExitOnError)
	var df deviceFlags
	df.register(fs)
	parse(fs, args)

	d := df.open()
	defer d.Close()

	fw, err := d.FirmwareVersion()
	if err != nil {
		fatalf("%v", err)
	}
	romStatus, err := d.ROMStatus()
	if err != nil {
		fatalf("%v", err)
	}
	fwStatus, err := d.FirmwareStatus()
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Chip:            %s\n", d.Chip())
	fmt.Printf("FW version:      %#08x\n", fw)
	fmt.Printf("FW_DLOAD_CTRL:   %s\n", fwStatus)
	fmt.Printf("ROM_CTRL:        %s\n", romStatus)
	if !romStatus.Exists() {
		fmt.Printf("EEPROM:          not installed\n")
		return
	}

	info, err := d.ROMInfo()
	if err != nil {
		fatalf("%v", err)
	}
	config, err := d.ROMConfig()
	if err != nil {
		fatalf("%v", err)
	}
	name := "unknown"
	if p, ok := upd72020x.LookupROMParams(info); ok {
		name = p.Name
	}
	fmt.Printf("EEPROM:          %#08x\t%s\n", info, name)
	fmt.Printf("ROM config:      %#08x\n", config)
}
