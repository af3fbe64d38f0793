package main

import (
	"os"

	"github.com/spf13/pflag"
)

func writeCommand(args []string) {
	fs := pflag.NewFlagSet("write", pflag.ExitOnError)
	var (
		df     deviceFlags
		inFile string
	)
	df.register(fs)
	fs.StringVarP(&inFile, "input", "i", "", "EEPROM image")
	parse(fs, args)

	if inFile == "" {
		fatalUsage("input file is required")
	}

	d := df.open()
	defer d.Close()
	prepareROM(d, true)

	input, err := os.Open(inFile)
	if err != nil {
		fatalf("ERROR: cant open file image %s: %v", inFile, err)
	}
	defer input.Close()

	reportf("writing %s to EEPROM", inFile)
	if err := d.UploadROM(input); err != nil {
		fatalf("ERROR: %v", err)
	}
	passed()
}
