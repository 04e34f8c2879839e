// Command mt19937 drives the MT19937 generator from the command line: it
// prints outputs, dumps and resumes states, and cross-checks the generator
// against an independent implementation.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

var version = semver{major: 1, minor: 0, patch: 0}

// semver holds the mt19937 command's semver values.
type semver struct {
	major, minor, patch uint32
}

// String satisfies fmt.Stringer.
func (s semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.major, s.minor, s.patch)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer closeLogRotator()

	_, err := configure(func(cfg *config, cmd flags.Commander, args []string) error {
		if cfg.LogFile != "" {
			if err := initLogRotator(cleanPath(cfg.LogFile), cfg.MaxLogRolls); err != nil {
				return err
			}
		}
		if err := setLogLevels(cfg.LogLevel); err != nil {
			return err
		}
		return cmd.Execute(args)
	})
	return err
}
