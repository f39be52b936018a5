// Package logger is a thin printf-style facade over logrus shared by every
// binary in this repository.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	std     = newDefault()
	closers []io.Closer
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLog configures the process-wide logger. Calling it again replaces the
// previous outputs.
func InitLog(opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	writers := make([]io.Writer, 0, len(opts.OutputPaths))
	var opened []io.Closer
	for _, path := range opts.OutputPaths {
		switch path {
		case "", "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create log dir for %q: %w", path, err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file %q: %w", path, err)
			}
			writers = append(writers, f)
			opened = append(opened, f)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	var formatter logrus.Formatter
	if opts.Format == FormatJSON {
		formatter = &logrus.JSONFormatter{DisableTimestamp: opts.DisableTimestamp}
	} else {
		formatter = &logrus.TextFormatter{
			FullTimestamp:    true,
			DisableTimestamp: opts.DisableTimestamp,
			DisableColors:    !opts.EnableColor,
			ForceColors:      opts.EnableColor,
		}
	}

	mu.Lock()
	defer mu.Unlock()

	flushLocked()
	std.SetOutput(io.MultiWriter(writers...))
	std.SetFormatter(formatter)
	std.SetLevel(level)
	std.SetReportCaller(opts.ReportCaller)
	closers = opened

	return nil
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// GetLevel returns the current minimum level.
func GetLevel() string {
	return std.GetLevel().String()
}

// SetOutput redirects all log output. Mostly used by tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// FlushLog closes any file outputs opened by InitLog.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	flushLocked()
}

func flushLocked() {
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return std.WithFields(fields)
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }
func Fatal(format string, args ...interface{}) { std.Fatalf(format, args...) }

// DebugX logs with a module field attached.
func DebugX(module, format string, args ...interface{}) {
	std.WithField("module", module).Debugf(format, args...)
}

// InfoX logs with a module field attached.
func InfoX(module, format string, args ...interface{}) {
	std.WithField("module", module).Infof(format, args...)
}

// WarnX logs with a module field attached.
func WarnX(module, format string, args ...interface{}) {
	std.WithField("module", module).Warnf(format, args...)
}

// ErrorX logs with a module field attached.
func ErrorX(module, format string, args ...interface{}) {
	std.WithField("module", module).Errorf(format, args...)
}
