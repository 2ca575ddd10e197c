package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// requireChanges fails an update command that was given none of its
// field flags.
func requireChanges(fs *pflag.FlagSet) error {
	set := 0
	fs.Visit(func(*pflag.Flag) { set++ })
	if set > 0 {
		return nil
	}
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name != "help" {
			names = append(names, "--"+f.Name)
		}
	})
	return fmt.Errorf("nothing to update: pass at least one of %s", strings.Join(names, ", "))
}

// changed returns v when the named flag was set on the command line, nil
// otherwise, for use with domain.ValueOr.
func changed[T any](fs *pflag.FlagSet, name string, v *T) *T {
	if fs.Changed(name) {
		return v
	}
	return nil
}
