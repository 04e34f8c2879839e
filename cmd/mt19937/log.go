package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/nozzle/mt19937/interop"
)

// logWriter writes to stderr and, when a log file is configured, to the
// rotator as well. Output on stdout is reserved for generated values.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	if logRotator == nil {
		return os.Stderr.Write(p)
	}
	os.Stderr.Write(p)
	return logRotator.Write(p)
}

var (
	backendLog = slog.NewBackend(logWriter{})
	logRotator *rotator.Rotator

	log        = backendLog.Logger("MAIN")
	interopLog = backendLog.Logger("IOP")

	subsystemLoggers = map[string]slog.Logger{
		"MAIN": log,
		"IOP":  interopLog,
	}
)

func init() {
	interop.UseLogger(interopLog)
}

// initLogRotator starts writing log output to logFile in addition to stderr.
func initLogRotator(logFile string, maxRolls int) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 32*1024, false, maxRolls)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(level string) error {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(lvl)
	}
	return nil
}
