package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, false)

	l.Info("loaded %d rows", 12)
	l.Error("failed: %s", "disk")
	l.Debug("hidden")

	if !strings.Contains(out.String(), "loaded 12 rows") {
		t.Errorf("info line missing: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "failed: disk") {
		t.Errorf("error line missing: %q", errOut.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug line written with debug disabled")
	}
}

func TestLoggerDebugEnabled(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo(&out, &out, true)
	l.Debug("shown %v", true)
	if !strings.Contains(out.String(), "shown true") {
		t.Errorf("debug line missing: %q", out.String())
	}
}
