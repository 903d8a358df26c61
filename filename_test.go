package siteshot

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestComposeFilename(t *testing.T) {
	values := FilenameValues{
		Domain:        "example.com_foo",
		Timestamp:     "2024-01-02_03-04-05",
		Label:         "mobile",
		CaptureSize:   "360x640",
		ImageSaveType: "png",
	}

	tests := []struct {
		format string
		want   string
	}{
		{"{domain}_{timestamp}.{image_save_type}", "example.com_foo_2024-01-02_03-04-05.png"},
		{"{domain}_{timestamp}_{label}_{capture_size}.{image_save_type}", "example.com_foo_2024-01-02_03-04-05_mobile_360x640.png"},
		{"{domain}", "example.com_foo.png"},
		{"{domain}.png", "example.com_foo.png"},
		{"{label}.jpg", "mobile.jpg.png"},
		{"static", "static.png"},
		{"{domain", "{domain.png"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := ComposeFilename(tt.format, values)
			if err != nil {
				t.Fatalf("ComposeFilename(%q) failed: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ComposeFilename(%q): expected %q, got %q", tt.format, tt.want, got)
			}
			if !strings.HasSuffix(got, ".png") {
				t.Errorf("Expected %q to end with .png", got)
			}
		})
	}
}

func TestComposeFilenameUnknownPlaceholder(t *testing.T) {
	for _, format := range []string{"{domain}_{date}", "{Domain}", "{}"} {
		_, err := ComposeFilename(format, FilenameValues{ImageSaveType: "png"})
		if !errors.Is(err, ErrUnknownPlaceholder) {
			t.Errorf("ComposeFilename(%q): expected ErrUnknownPlaceholder, got %v", format, err)
		}
	}
}

func TestEnsureExtensionIdempotent(t *testing.T) {
	for _, name := range []string{"a", "a.png", "a.png.png", "a.jpg", ""} {
		once := EnsureExtension(name, "png")
		twice := EnsureExtension(once, "png")
		if once != twice {
			t.Errorf("EnsureExtension not idempotent for %q: %q != %q", name, once, twice)
		}
		if !strings.HasSuffix(once, ".png") {
			t.Errorf("EnsureExtension(%q) = %q, missing .png", name, once)
		}
	}

	if got := EnsureExtension("shot.png", "png"); got != "shot.png" {
		t.Errorf("Expected shot.png unchanged, got %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 7, 5, 3, 0, time.Local)
	if got := Timestamp(ts); got != "2024-03-09_07-05-03" {
		t.Errorf("Expected 2024-03-09_07-05-03, got %s", got)
	}

	// Values are rendered in local time.
	utc := ts.UTC()
	if got := Timestamp(utc); got != "2024-03-09_07-05-03" {
		t.Errorf("Expected UTC input to be shown in local time, got %s", got)
	}
}
