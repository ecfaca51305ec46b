package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("server started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "server started") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "port=8080") {
		t.Errorf("output missing attribute: %q", out)
	}
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("output missing level: %q", out)
	}
}

func TestTextOutputColor(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", true)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Warn("disk almost full", "free_mb", 12)

	out := buf.String()
	if !strings.Contains(out, "\033[33mWARN\033[0m") {
		t.Errorf("level should be colored: %q", out)
	}
	if !strings.Contains(out, "\033[36mfree_mb\033[0m=12") {
		t.Errorf("attribute key should be colored: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("upload complete", "size", 42)

	out := buf.String()
	if !strings.Contains(out, `"msg":"upload complete"`) {
		t.Errorf("json output missing message: %q", out)
	}
	if !strings.Contains(out, `"size":42`) {
		t.Errorf("json output missing attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Debug("debug line")
	Info("info line")
	Warn("warn line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("lines below WARN should be suppressed: %q", out)
	}
	if !strings.Contains(out, "warn line") {
		t.Errorf("warn line should be present: %q", out)
	}
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	ctx := WithContext(context.Background(), &LogContext{
		RequestID: "req-123",
		Owner:     "alice",
	})
	InfoCtx(ctx, "file uploaded", "name", "a.txt")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-123") {
		t.Errorf("output missing request_id: %q", out)
	}
	if !strings.Contains(out, "owner=alice") {
		t.Errorf("output missing owner: %q", out)
	}
}

func TestFromContextNil(t *testing.T) {
	if lc := FromContext(context.Background()); lc != nil {
		t.Errorf("expected nil LogContext, got %+v", lc)
	}
	if lc := FromContext(nil); lc != nil { //nolint:staticcheck // explicit nil check
		t.Errorf("expected nil LogContext for nil ctx, got %+v", lc)
	}
}

func TestInvalidLevelIgnored(t *testing.T) {
	SetLevel("INFO")
	SetLevel("NOPE")
	if Level(currentLevel.Load()) != LevelInfo {
		t.Errorf("invalid level should be ignored")
	}
}
