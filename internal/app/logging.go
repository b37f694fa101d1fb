package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel is a message severity. Higher is more severe.
type LogLevel int

// Log levels, least severe first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a configured level name to a LogLevel. Names are
// case-insensitive; anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	switch s = strings.ToLower(s); s {
	case "warning":
		return LogLevelWarn
	case "debug", "warn", "error":
		return LogLevel(slices.Index(levelNames[:], strings.ToUpper(s)))
	}
	return LogLevelInfo
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer // os.Stderr when nil
	Prefix string
}

// Logger writes leveled, printf-style lines:
//
//	2026-01-02T03:04:05.000 [INFO] inkwell: message {key=value}
//
// Children made with WithField share the parent's writer and level.
type Logger struct {
	sink   *logSink
	prefix string
	fields string
	keys   map[string]any
}

type logSink struct {
	mu    sync.Mutex
	level LogLevel
	out   io.Writer
	muted bool
	now   func() time.Time
}

// NewLogger returns a logger for cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		sink:   &logSink{level: cfg.Level, out: out, now: time.Now},
		prefix: cfg.Prefix,
	}
}

// NullLogger drops everything.
var NullLogger = &Logger{sink: &logSink{muted: true, out: io.Discard, now: time.Now}}

// WithField returns a child logger tagging each line with key=value.
func (l *Logger) WithField(key string, value any) *Logger {
	keys := make(map[string]any, len(l.keys)+1)
	for k, v := range l.keys {
		keys[k] = v
	}
	keys[key] = value

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	slices.Sort(names)
	pairs := make([]string, len(names))
	for i, k := range names {
		pairs[i] = fmt.Sprintf("%s=%v", k, keys[k])
	}

	return &Logger{
		sink:   l.sink,
		prefix: l.prefix,
		keys:   keys,
		fields: " {" + strings.Join(pairs, ", ") + "}",
	}
}

// WithComponent is WithField("component", name).
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// SetLevel changes the threshold for this logger and its relatives.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

// Level returns the current threshold.
func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

// SetOutput redirects the shared writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.out = w
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(LogLevelError, msg, args) }

func (l *Logger) write(level LogLevel, msg string, args []any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted || level < s.level {
		return
	}

	// Without args msg is literal, so "100%" survives.
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	prefix := ""
	if l.prefix != "" {
		prefix = l.prefix + ": "
	}
	fmt.Fprintf(s.out, "%s [%s] %s%s%s\n",
		s.now().Format("2006-01-02T15:04:05.000"), level, prefix, msg, l.fields)
}
