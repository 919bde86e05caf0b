package taso

import (
	"log"
	"os"
)

// Logger receives the driver's free-text progress lines (spec §6 "Optional
// progress log"). lvlath has no logging-framework dependency anywhere in
// the teacher pack, so the default implementation stays on stdlib `log`
// rather than introducing one.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger adapts *log.Logger to the Logger interface.
type stdLogger struct{ l *log.Logger }

// NewStdLogger returns a Logger that writes lines prefixed with the local
// date and time (log.LstdFlags, e.g. "2009/01/23 01:23:23") to os.Stderr,
// the default used when no Logger option is supplied.
func NewStdLogger() Logger {
	return stdLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

func (s stdLogger) Printf(format string, args ...any) { s.l.Printf(format, args...) }

// NopLogger discards every line; useful for tests and library embedders
// that want to supply their own sink via the CSV/result-store options
// instead of free-text logging.
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}
