// Package logging provides structured logging for vidprep.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level aliases for slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is a slog logger that may own the file it writes to.
type Logger struct {
	*slog.Logger
	file     *os.File
	filePath string
}

// NewText returns a logger writing text records at or above level to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewText(io.Discard, LevelError+1)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file, or "" when not logging to a file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

var global atomic.Pointer[Logger]

// Global returns the process-wide logger. Until SetGlobal is called it
// writes warnings and errors to stderr.
func Global() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewText(os.Stderr, LevelWarn))
	return global.Load()
}

// SetGlobal replaces the process-wide logger.
func SetGlobal(l *Logger) {
	global.Store(l)
}

func Debug(msg string, args ...any) { Global().Debug(msg, args...) }
func Info(msg string, args ...any) { Global().Info(msg, args...) }
func Warn(msg string, args ...any) { Global().Warn(msg, args...) }
func Error(msg string, args ...any) { Global().Error(msg, args...) }
