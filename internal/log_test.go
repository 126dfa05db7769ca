package internal

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestComponentLogger_Prefix(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	NewLogger(LogLevelInfo).Component("sweep").Info("pairs=%d", 3)

	out := buf.String()
	if !strings.Contains(out, "[INFO] [sweep] pairs=3") {
		t.Errorf("log output = %q, want line containing %q", out, "[INFO] [sweep] pairs=3")
	}
}

func TestComponentLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	c := NewLogger(LogLevelWarn).Component("api")
	c.Info("should be suppressed")
	c.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info message leaked through warn-level logger: %q", out)
	}
	if !strings.Contains(out, "[WARN] [api] should appear") {
		t.Errorf("log output = %q, want warn line with [api] prefix", out)
	}
}
