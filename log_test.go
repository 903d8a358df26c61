package siteshot

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	var logger logrus.FieldLogger = NewLogger(&buf, false)

	logger.Debugf("hidden")
	logger.Infof("Screenshot saved for %s", "http://example.com")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug lines to be dropped, got %q", out)
	}
	if !strings.Contains(out, "level=info") {
		t.Errorf("Expected a level tag, got %q", out)
	}
	if !regexp.MustCompile(`time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"`).MatchString(out) {
		t.Errorf("Expected a full timestamp, got %q", out)
	}
}

func TestNewLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, true).Debugf("visible")

	if !strings.Contains(buf.String(), "level=debug") {
		t.Errorf("Expected a debug line, got %q", buf.String())
	}
}
