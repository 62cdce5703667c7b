package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Unknown names give LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	}
	return LevelInfo
}

// Logger stores lines in memory and appends them to a file on disk.
// A nil *Logger discards everything, so components can log unconditionally.
type Logger struct {
	mu    sync.Mutex
	path  string
	min   Level
	echo  *termenv.Output
	lines []string
	now   func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel drops entries below min.
func WithLevel(min Level) Option {
	return func(l *Logger) { l.min = min }
}

// WithEcho also writes every entry to w (e.g. os.Stderr). Level tags are
// colored when w is a color terminal.
func WithEcho(w io.Writer) Option {
	return func(l *Logger) { l.echo = termenv.NewOutput(w) }
}

var levelColors = map[Level]string{
	LevelDebug: "#8a8a8a",
	LevelInfo:  "#5fafd7",
	LevelWarn:  "#d7af00",
	LevelError: "#ff6b6b",
}

// WithPath overrides LogFilePath. An empty path keeps entries in memory only.
func WithPath(path string) Option {
	return func(l *Logger) { l.path = path }
}

// New returns a new Logger and ensures the log directory exists.
func New(opts ...Option) *Logger {
	l := &Logger{path: LogFilePath, min: LevelInfo, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	if l.path != "" {
		_ = os.MkdirAll(filepath.Dir(l.path), 0755)
	}
	return l
}

// Log appends an info line. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.write(LevelInfo, line)
}

// Debugf logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...any) {
	l.write(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at LevelInfo.
func (l *Logger) Infof(format string, args ...any) {
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at LevelWarn.
func (l *Logger) Warnf(format string, args ...any) {
	l.write(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at LevelError.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) write(level Level, line string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.min {
		return
	}
	ts := "[" + l.now().Format("2006-01-02 15:04:05") + "] "
	stamped := ts + level.String() + " " + line
	l.lines = append(l.lines, stamped)

	if l.echo != nil {
		tag := l.echo.String(level.String()).Foreground(l.echo.Color(levelColors[level]))
		_, _ = l.echo.WriteString(ts + tag.String() + " " + line + "\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
