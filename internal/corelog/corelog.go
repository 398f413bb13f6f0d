// Package corelog provides the minimal leveled logging used by the
// components of the core that have observable lifecycle events: the
// coordinator's advance-thread start, stop and failed steps, and the
// particle system's collisions. It is deliberately not a structured
// logging framework — the core is a library, and most of it is silent.
package corelog

import (
	"log"
	"os"
)

// Logger writes bracketed, component-tagged lines to an underlying
// *log.Logger, matching the "[Component] message" convention used by
// simulation-shaped command-line tools.
type Logger struct {
	tag string
	out *log.Logger
}

// New returns a Logger that prefixes every line with "[tag] ".
func New(tag string) *Logger {
	return &Logger{tag: tag, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.out.Printf("[%s] "+format, append([]interface{}{l.tag}, args...)...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.out.Printf("[%s] WARN "+format, append([]interface{}{l.tag}, args...)...)
}
