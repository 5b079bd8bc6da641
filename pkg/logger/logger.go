// Package logger is the link's process-wide log facade: the same exported
// surface the teacher's hand-rolled logger exposed, now delegating to a
// zap.SugaredLogger built by pkg/logging.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uwst-robotics/vexbridge-link/pkg/logging"
)

// ANSI color codes, used only by Banner/Section (zap owns level coloring).
const (
	ColorReset = "\033[0m"
	ColorCyan  = "\033[36m"
	ColorGreen = "\033[32m"
)

var sugared = mustFallback()

// mustFallback builds a default info-level logger so call sites work even
// before Init is called explicitly (mirrors the teacher's package-level
// defaultLogger).
func mustFallback() *zap.SugaredLogger {
	s, err := logging.Init(zapcore.InfoLevel)
	if err != nil {
		// Stderr fallback: logging.Init only fails on a malformed zap
		// config, which a fixed console config never produces.
		fmt.Fprintf(os.Stderr, "logger: failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return s
}

// Init rebuilds the package-level logger at the given level. Called once
// from cmd/vexlinkd after config is loaded.
func Init(level zapcore.Level) error {
	s, err := logging.Init(level)
	if err != nil {
		return err
	}
	sugared = s
	return nil
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) { sugared.Debugf(format, args...) }

// Info logs an informational message.
func Info(format string, args ...interface{}) { sugared.Infof(format, args...) }

// Warn logs a warning message.
func Warn(format string, args ...interface{}) { sugared.Warnf(format, args...) }

// Error logs an error message.
func Error(format string, args ...interface{}) { sugared.Errorf(format, args...) }

// Fatal logs a fatal error and exits.
func Fatal(format string, args ...interface{}) { sugared.Fatalf(format, args...) }

// Section prints a section header for startup/shutdown milestones.
func Section(title string) {
	border := "═══════════════════════════════════════════════════════════"
	fmt.Printf("\n%s╔%s╗%s\n", ColorCyan, border, ColorReset)
	fmt.Printf("%s║%s %-57s %s║%s\n", ColorCyan, ColorReset, title, ColorCyan, ColorReset)
	fmt.Printf("%s╚%s╝%s\n\n", ColorCyan, border, ColorReset)
}

// Banner prints the vexlinkd startup banner.
func Banner(version string) {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                    vexlinkd %s%-8s%s                     ║
║         robot-side telemetry link — framed, checksummed    ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, ColorGreen, version, ColorReset)
}
