package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	infoTag  = color.New(color.FgGreen).Sprint("INFO")
	warnTag  = color.New(color.FgYellow).Sprint("WARN")
	errorTag = color.New(color.FgRed).Sprint("ERROR")
	debugTag = color.New(color.FgCyan).Sprint("DEBUG")
)

// Logger provides leveled logging for the report pipeline and its shells.
type Logger struct {
	out   *log.Logger
	err   *log.Logger
	debug bool
}

// NewLogger creates a Logger writing to stdout/stderr. Debug lines are
// dropped unless debug is set.
func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, debug)
}

// NewLoggerTo creates a Logger on arbitrary writers.
func NewLoggerTo(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:   log.New(out, "", 0),
		err:   log.New(errOut, "", 0),
		debug: debug,
	}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) line(tag, format string, args []any) string {
	return fmt.Sprintf("[%s] %-5s %s", l.timestamp(), tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Println(l.line(infoTag, format, args))
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Println(l.line(warnTag, format, args))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Println(l.line(errorTag, format, args))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.out.Println(l.line(debugTag, format, args))
}
