package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "inkwell"})
	l.sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LogLevelDebug)
	l.WithComponent("session").WithField("id", 7).Info("mounted %s", "doc")

	want := "2026-01-02T03:04:05.000 [INFO] inkwell: mounted doc {component=session, id=7}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoggerLevel(t *testing.T) {
	l, buf := newTestLogger(LogLevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[WARN]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Errorf("unexpected lines %q", lines)
	}

	child := l.WithComponent("config")
	child.SetLevel(LogLevelDebug)
	if l.Level() != LogLevelDebug {
		t.Error("child loggers should share the level")
	}
}

func TestLoggerPercentWithoutArgs(t *testing.T) {
	l, buf := newTestLogger(LogLevelInfo)
	l.Info("100% done")
	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("message mangled: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("dropped %d", 1)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"Warning": LogLevelWarn,
		"error":   LogLevelError,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
