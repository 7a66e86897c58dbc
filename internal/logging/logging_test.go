package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextCarrier(t *testing.T) {
	logger := slog.Default()

	ctx := ContextWithLogger(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatal("expected attached logger back")
	}

	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for bare context, got %v", got)
	}
}

func TestContextWithLoggerNilSafety(t *testing.T) {
	ctx := ContextWithLogger(context.Background(), nil)
	if got := FromContext(ctx); got != nil {
		t.Fatalf("expected nil logger to not be stored, got %v", got)
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("booking created", "booking_id", "b1")

	out := buf.String()
	if !strings.Contains(out, `"msg":"booking created"`) {
		t.Fatalf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"booking_id":"b1"`) {
		t.Fatalf("expected attribute in output, got %q", out)
	}
}

func TestNewLoggerNilWriterDiscards(t *testing.T) {
	logger := NewLogger(nil, slog.LevelDebug)
	// Must not panic.
	logger.Info("dropped")
}
