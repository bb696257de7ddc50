package server

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var debug bool

// SetDebug enables per-request debug logging.
func SetDebug(enabled bool) { debug = enabled }

func debugf(format string, v ...interface{}) {
	if debug {
		Logf(format, v...)
	}
}
