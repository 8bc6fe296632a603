package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
)

// Logger is the subset of the gommon logger the components write through.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// header renders lines as "<timestamp> - <LEVEL> - <message>".
const header = "${time_rfc3339} - ${level} -"

// New builds the shared leveled sink writing both to the access log file and
// to the console. The log directory is created if missing.
func New(logPath string) (*log.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := log.New("gsmonitor")
	l.SetHeader(header)
	l.SetLevel(log.INFO)
	l.SetOutput(io.MultiWriter(file, os.Stderr))
	return l, nil
}

// Discard returns a logger for tests that swallows all output.
func Discard() *log.Logger {
	l := log.New("gsmonitor")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}
