// ABOUTME: Tests for the logging package
// ABOUTME: Validates level filtering, level parsing, and output redirection

package log

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// capture redirects output into a buffer for the duration of the test.
// Tests using it touch global state and must not run in parallel.
func capture(t *testing.T, l slog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevLevel := GetLevel()
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: LevelInfo},
		{in: "info", want: LevelInfo},
		{in: "DEBUG", want: LevelDebug},
		{in: " warn ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "trace", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := capture(t, LevelInfo)

	Debug("this should be suppressed: %s", "test")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDebugEmittedAtDebugLevel(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("key %s", "Up")
	if !strings.Contains(buf.String(), "[DEBUG] key Up") {
		t.Errorf("output = %q, want debug line", buf.String())
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := capture(t, LevelError)

	Warn("hidden")
	Error("fatal: %d", 1)
	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("warn emitted at error level: %q", got)
	}
	if !strings.Contains(got, "[ERROR] fatal: 1") {
		t.Errorf("output = %q, want error line", got)
	}
}

func TestAllLevels(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("debug: %d", 1)
	Info("info: %d", 2)
	Warn("warn: %d", 3)
	Error("error: %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), buf.String())
	}
}

func TestSetOutputNilDiscards(t *testing.T) {
	prev := SetOutput(nil)
	t.Cleanup(func() { SetOutput(prev) })

	if got := SetOutput(io.Discard); got != io.Discard {
		t.Errorf("SetOutput(nil) installed %v, want io.Discard", got)
	}
	Error("goes nowhere")
}
