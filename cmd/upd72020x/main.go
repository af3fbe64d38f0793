package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/spf13/pflag"
)

// envPrefix names the environment variables that stand in for unset flags,
// e.g. UPD72020X_ADDR=02:00.0.
const envPrefix = "UPD72020X_"

// fatalf logs through glog, which copies errors to stderr.
func fatalf(format string, a ...any) {
	glog.Errorf(format, a...)
	failed()
}

func fatalUsage(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	glog.Flush()
	os.Exit(2)
}

// reportf prints progress for the user and keeps it in the log.
func reportf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	glog.Infof(format, a...)
}

func passed() {
	color.New(color.FgGreen).Fprintln(os.Stdout, " ======> PASSED")
	glog.Flush()
	os.Exit(0)
}

func failed() {
	color.New(color.FgRed).Fprintln(os.Stdout, " ======> FAILED")
	glog.Flush()
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
	upd72020x <command> [arguments]

Commands:
	info	 print controller and EEPROM registers
	read	 read EEPROM to file (size default is 0x10000 or 64KB)
	write	 write file to EEPROM
	upload	 upload file to firmware memory
	release	 clear ROM access and firmware download enable

The controller is selected with --addr BB:DD.F or -b bus -d dev -f fct (hex).
Unset flags are read from %s<FLAG> environment variables.

Logging flags:
%s`, envPrefix, pflag.CommandLine.FlagUsages())
	os.Exit(2)
}

func main() {
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	pflag.CommandLine.SetInterspersed(false)
	pflag.Usage = usage
	pflag.Parse()
	// glog only reads its flags once the standard flag set is parsed.
	goflag.CommandLine.Parse(nil)
	defer glog.Flush()

	if pflag.NArg() == 0 {
		usage()
	}

	switch cmd, args := pflag.Arg(0), pflag.Args()[1:]; cmd {
	case "info":
		infoCommand(args)
	case "read":
		readCommand(args)
	case "write":
		writeCommand(args)
	case "upload":
		uploadCommand(args)
	case "release":
		releaseCommand(args)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmd)
		usage()
	}
}
