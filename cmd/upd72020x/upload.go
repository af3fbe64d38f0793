package main

import (
	"os"

	"github.com/spf13/pflag"
)

func uploadCommand(args []string) {
	fs := pflag.NewFlagSet("upload", pflag.ExitOnError)
	var (
		df     deviceFlags
		inFile string
	)
	df.register(fs)
	fs.StringVarP(&inFile, "input", "i", "", "firmware image")
	parse(fs, args)

	if inFile == "" {
		fatalUsage("input file is required")
	}

	d := df.open()
	defer d.Close()
	prepareROM(d, false)

	input, err := os.Open(inFile)
	if err != nil {
		fatalf("ERROR: cant open file image %s: %v", inFile, err)
	}
	defer input.Close()

	reportf("uploading %s to firmware memory", inFile)
	if err := d.UploadFirmware(input); err != nil {
		fatalf("ERROR: %v", err)
	}
	passed()
}
