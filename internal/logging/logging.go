// Package logging configures the standard logger.
//
// Logs go to stderr by default because stdout carries the protocol. When a log
// file is configured, output is written there instead and rotated by
// lumberjack.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file logging.
const (
	maxSizeMB  = 10
	maxBackups = 2
	maxAgeDays = 28
)

var debug atomic.Bool

// Setup points the standard logger at stderr or, if file is non-empty, at a
// rotating log file. The returned closer releases the file; it is a no-op for
// stderr.
func Setup(file string, debugEnabled bool) io.Closer {
	debug.Store(debugEnabled)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if file == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	log.SetOutput(lj)
	return lj
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs with a [DEBUG] prefix when debug logging is on.
func Debugf(format string, v ...interface{}) {
	if debug.Load() {
		log.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
