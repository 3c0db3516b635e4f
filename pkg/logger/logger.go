package logger

import (
	"log"
	"os"
	"sync/atomic"
)

var (
	infoLogger  = log.New(os.Stdout, "INFO:  ", log.Ldate|log.Ltime)
	warnLogger  = log.New(os.Stderr, "WARN:  ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	fatalLogger = log.New(os.Stderr, "FATAL: ", log.Ldate|log.Ltime)
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)

	// debugLevel mirrors the source's configurable srv_debug verbosity:
	// at 0 only level-0 messages are printed, higher numbers show more.
	debugLevel atomic.Int32
)

// SetDebugLevel configures the maximum level Debug will print.
func SetDebugLevel(level int) {
	debugLevel.Store(int32(level))
}

// Info logs informational messages to stdout
func Info(format string, v ...interface{}) {
	infoLogger.Printf(format, v...)
}

// Warn logs warning messages to stderr
func Warn(format string, v ...interface{}) {
	warnLogger.Printf(format, v...)
}

// Error logs error messages to stderr
func Error(format string, v ...interface{}) {
	errorLogger.Printf(format, v...)
}

// Fatal logs fatal error messages to stderr and exits with status 1
func Fatal(format string, v ...interface{}) {
	fatalLogger.Printf(format, v...)
	os.Exit(1)
}

// Debug logs a message to stdout when level is at or below the
// configured debug level. Level 1 is routine diagnostics ("job thread
// 3 started"); level 2 is noisy per-wakeup tracing.
func Debug(level int, format string, v ...interface{}) {
	if int32(level) > debugLevel.Load() {
		return
	}
	debugLogger.Printf(format, v...)
}
