package main

import "github.com/spf13/pflag"

// releaseCommand drops both access gates, e.g. after an interrupted or
// failed transfer left them set.
func releaseCommand(args []string) {
	fs := pflag.NewFlagSet("release", pflag.ExitOnError)
	var df deviceFlags
	df.register(fs)
	parse(fs, args)

	d := df.open()
	defer d.Close()

	if err := d.ReleaseFirmware(); err != nil {
		fatalf("ERROR: %v", err)
	}
	exists, err := d.ROM().Exists()
	if err != nil {
		fatalf("ERROR: %v", err)
	}
	if exists {
		if err := d.ROM().Disable(); err != nil {
			fatalf("ERROR: %v", err)
		}
	}
	passed()
}
