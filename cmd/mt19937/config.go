package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

const (
	appName               = "mt19937"
	defaultConfigFilename = "mt19937.conf"
)

// defaultConfigPath returns the config file under the user's config
// directory, or "" when that directory cannot be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, defaultConfigFilename)
}

// config defines the global options and the command set of mt19937.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	Config      string `short:"C" long:"config" description:"Path to an INI configuration file"`
	LogLevel    string `long:"loglevel" default:"info" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	LogFile     string `long:"logfile" description:"Also write log output to this file, rotating it as it grows"`
	MaxLogRolls int    `long:"maxlogrolls" default:"4" description:"Number of rotated log files to keep"`

	Generate generateCmd `command:"generate" description:"Print outputs of a seeded generator"`
	Dump     dumpCmd     `command:"dump" description:"Export a generator state to a file"`
	Resume   resumeCmd   `command:"resume" description:"Import a state file and print the continuation"`
	Verify   verifyCmd   `command:"verify" description:"Cross-check outputs against an independent MT19937"`
	Stats    statsCmd    `command:"stats" description:"Run a uniformity check on a seeded generator"`
	Recover  recoverCmd  `command:"recover" description:"Recover a generator from outputs read on stdin"`
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// cleanPath expands environment variables and a leading ~ in path and cleans
// the result.
func cleanPath(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(path)
}

// configure parses command line options and the config file if present, and
// runs the selected command through handler. It returns true if there was
// nothing further to do (help or version was printed).
func configure(handler func(cfg *config, cmd flags.Commander, args []string) error) (bool, error) {
	cfg := &config{Config: defaultConfigPath()}

	// Pre-parse to find the config file and the informational flags without
	// running a command.
	preParser := flags.NewParser(cfg, flags.HelpFlag|flags.IgnoreUnknown)
	preParser.SubcommandsOptional = true
	preParser.CommandHandler = func(flags.Commander, []string) error { return nil }
	if _, err := preParser.Parse(); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Println(err)
			return true, nil
		}
		return false, err
	}

	if cfg.ShowVersion {
		fmt.Printf("mt19937 version %s (Go version %s %s/%s)\n",
			version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return true, nil
	}

	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	if cfgPath := cleanPath(cfg.Config); cfgPath != "" && fileExists(cfgPath) {
		if err := flags.NewIniParser(parser).ParseFile(cfgPath); err != nil {
			return false, err
		}
	}

	// Parse command line options again to ensure they take precedence, then
	// run the command.
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		return handler(cfg, cmd, args)
	}
	if _, err := parser.Parse(); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Println(err)
			return true, nil
		}
		return false, err
	}
	return false, nil
}
