// =============================================================================
// EVE Parser - Logging
// =============================================================================
//
// Logger is the small leveled logging interface used across the application.
// The default implementation writes through github.com/couchbase/clog.
//
// LEVELS:
//   "debug", "info", "warn", "error" (case-insensitive). The short clog names
//   "DEBU", "INFO", "WARN", "ERRO" are accepted as well.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"strings"

	log "github.com/couchbase/clog"
)

// Logger is an interface for leveled, printf-style logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// LogLevels maps level names to clog levels.
var LogLevels = map[string]uint32{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,

	"DEBU": 0,
	"INFO": 1,
	"WARN": 2,
	"ERRO": 3,
}

// ParseLevel resolves a level name.
func ParseLevel(level string) (uint32, error) {
	if n, ok := LogLevels[level]; ok {
		return n, nil
	}
	if n, ok := LogLevels[strings.ToLower(level)]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

// clogLogger forwards to the process-wide clog logger.
type clogLogger struct{}

// New configures clog to write to out at the given level and returns a
// Logger backed by it. clog state is process-wide, so the last call wins.
func New(out io.Writer, level string) (Logger, error) {
	n, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if out != nil {
		log.SetOutput(out)
	}
	log.SetLevel(log.LogLevel(n))
	return clogLogger{}, nil
}

func (clogLogger) Debug(msg string, args ...interface{}) {
	log.Debugf(msg, args...)
}

func (clogLogger) Info(msg string, args ...interface{}) {
	log.Printf(msg, args...)
}

func (clogLogger) Warn(msg string, args ...interface{}) {
	log.Warnf(msg, args...)
}

func (clogLogger) Error(msg string, args ...interface{}) {
	log.Errorf(msg, args...)
}

// Discard is a Logger that drops everything.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{}) {}
func (discard) Info(string, ...interface{})  {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}
