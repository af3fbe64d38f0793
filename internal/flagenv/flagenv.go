// Package flagenv fills command line flags from the environment.
package flagenv

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// ParseFlagSet sets every flag of fs that was not given on the command line
// from the environment variable named prefix + the upper-cased flag name,
// with dashes turned into underscores. Empty variables are ignored.
//
// It must be called after fs.Parse.
func ParseFlagSet(fs *pflag.FlagSet, prefix string) error {
	// pflag can't tell a flag left at its default from one that was never
	// set, so collect all flags and drop the ones Visit reports as set.
	unset := map[string]*pflag.Flag{}
	fs.VisitAll(func(f *pflag.Flag) {
		unset[f.Name] = f
	})
	fs.Visit(func(f *pflag.Flag) {
		delete(unset, f.Name)
	})

	for name, f := range unset {
		v := os.Getenv(EnvName(prefix, name))
		if v == "" {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return err
		}
		f.Changed = true
	}
	return nil
}

// EnvName returns the variable consulted for flag name.
func EnvName(prefix, name string) string {
	return prefix + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
}
