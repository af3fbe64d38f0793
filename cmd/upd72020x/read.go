package main

import (
	"fmt"
	"os"

	"github.com/gentam/upd72020x"
	"github.com/spf13/pflag"
)

func readCommand(args []string) {
	fs := pflag.NewFlagSet("read", pflag.ExitOnError)
	var (
		df      deviceFlags
		outFile string
		size    string
	)
	df.register(fs)
	fs.StringVarP(&outFile, "output", "o", "", "output file")
	fs.StringVarP(&size, "size", "s", fmt.Sprintf("%x", upd72020x.DefaultROMSize), "number of bytes to read (hex)")
	parse(fs, args)

	if outFile == "" {
		fatalUsage("output file is required")
	}
	n, err := parseHexSize(size)
	if err != nil {
		fatalUsage("invalid size %q: %v", size, err)
	}
	if n%8 != 0 {
		reportf("size %#x is not a multiple of 8, the last %d bytes are not read", n, n%8)
	}

	d := df.open()
	defer d.Close()
	prepareROM(d, true)

	out, err := os.OpenFile(outFile, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		fatalf("ERROR: cant open file %s: %v", outFile, err)
	}
	defer out.Close()

	if err := d.DownloadROM(out, n); err != nil {
		fatalf("ERROR: %v", err)
	}
	if err := out.Close(); err != nil {
		fatalf("ERROR: %v", err)
	}
	passed()
}
