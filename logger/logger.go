package logger

import (
	"io"
	"log"
	"os"
)

// Logger wraps a few log.Logger instances in private fields.
// They are accessible via their respective methods.
type Logger struct {
	debug   *log.Logger
	info    *log.Logger
	error   *log.Logger
	verbose bool
}

// NewLogger returns a Logger writing debug and error output to os.Stderr and
// info output to os.Stdout.
func NewLogger(verbose bool) *Logger {
	return New(os.Stdout, os.Stderr, verbose)
}

// New returns a Logger writing info output to out and everything else to errOut.
func New(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{
		debug:   log.New(errOut, "[debug] ", 0),
		info:    log.New(out, "", 0),
		error:   log.New(errOut, "", 0),
		verbose: verbose,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, io.Discard, false)
}

// Debug prints a formatted message to stderr only if verbose is set.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.debug.Printf(format, args...)
}

// Infoln prints all args to stdout followed by a newline.
func (l *Logger) Infoln(args ...interface{}) {
	l.info.Println(args...)
}

// Infof prints a formatted message to stdout
func (l *Logger) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

// Error prints a message and the given error's message to stderr
func (l *Logger) Error(msg string, err error) {
	if err != nil {
		l.error.Print(msg, err.Error())
	}
}
