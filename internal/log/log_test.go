package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func swapLogger(t *testing.T, level, format string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	log = newLogger(level, format, &buf)
	t.Cleanup(func() {
		log = newLogger("info", "console", os.Stderr)
	})
	return &buf
}

func TestLoggerWritesConfiguredFormat(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			buf := swapLogger(t, "debug", format)

			Info("manifest loaded", "racks", 3)
			if !strings.Contains(buf.String(), "manifest loaded") {
				t.Errorf("output missing message: %q", buf.String())
			}
		})
	}
}

func TestLoggerSuppressesBelowLevel(t *testing.T) {
	buf := swapLogger(t, "error", "console")

	Debug("quiet")
	Info("quiet")
	Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("suppressed levels produced output: %q", buf.String())
	}

	Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("error level not emitted: %q", buf.String())
	}
}
