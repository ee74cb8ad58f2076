package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestLogLevels(t *testing.T) {
	out := captureLogOutput(func() {
		Debug("debug message", "k", "v")
		Info("info message")
		Warn("warn message")
		Error("error message")
	})

	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScaffold(t *testing.T) {
	out := captureLogOutput(func() {
		Scaffold("bajrang-baan", "bajrang-baan/index.html", 3, 12)
	})

	for _, want := range []string{"scaffold", "bajrang-baan", `"sections":3`, `"verses":12`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerationError(t *testing.T) {
	out := captureLogOutput(func() {
		GenerationError("hanuman-chalisa", "chaupai-15", errors.New("api timeout"))
	})

	for _, want := range []string{"generation_error", "chaupai-15", "api timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInitLoggerFormats(t *testing.T) {
	// InitLogger should not panic for any level/format combination and
	// must leave a usable global logger behind.
	levels := []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, Level(99)}
	formats := []Format{FormatJSON, FormatText}

	for _, lvl := range levels {
		for _, f := range formats {
			InitLogger(lvl, f)
			if GetLogger() == nil {
				t.Fatalf("GetLogger() returned nil after InitLogger(%v, %v)", lvl, f)
			}
		}
	}

	// Restore default state for other tests.
	InitLogger(LevelInfo, FormatText)
}
