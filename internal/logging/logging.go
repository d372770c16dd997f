// Package logging provides the process-wide append-only log sink.
//
// Entries are written as "timestamp - LEVEL - message", one write per entry.
// The underlying *log.Logger serializes concurrent writers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/pyformat/domain"
)

// Level is a log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	default:
		return "ERROR"
	}
}

// ParseLevel converts a config value to a Level. Empty means error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "error":
		return LevelError, nil
	}
	return LevelError, domain.NewConfigError(fmt.Sprintf("unknown log level %q (use debug, info or error)", s), nil)
}

const timestampLayout = "2006-01-02 15:04:05,000"

// Logger writes leveled entries to one destination
type Logger struct {
	out    *log.Logger
	level  Level
	closer io.Closer
	now    func() time.Time
}

// New creates a Logger writing to w
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   log.New(w, "", 0),
		level: level,
		now:   time.Now,
	}
}

// Open creates a Logger appending to the file at path. The file is created
// if it does not exist and is never truncated.
func Open(path string, level Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, domain.NewResourceError(fmt.Sprintf("cannot open log file %s", path), err)
	}
	l := New(f, level)
	l.closer = f
	return l, nil
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return New(io.Discard, LevelError+1)
}

// DefaultPath returns the log file path next to the running executable,
// or in the working directory when the executable cannot be located.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return domain.DefaultLogFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), domain.DefaultLogFile)
}

// Enabled reports whether entries at level are written
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	_ = l.out.Output(3, fmt.Sprintf("%s - %s - %s", l.now().Format(timestampLayout), level, msg))
}

// Debugf logs at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Errorf logs at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
