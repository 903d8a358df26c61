package siteshot

import (
	"errors"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "http://example.com"},
		{"example.com/path?q=1", "http://example.com/path?q=1"},
		{"example.com:8080", "http://example.com:8080"},
		{"localhost:3000/app", "http://localhost:3000/app"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"https://www.example.com/foo", "https://www.example.com/foo"},
		{"file:///tmp/page.html", "file:///tmp/page.html"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeURL(%q): expected %q, got %q", tt.in, tt.want, got)
			}
			// Normalizing twice changes nothing.
			if got := NormalizeURL(NormalizeURL(tt.in)); got != tt.want {
				t.Errorf("NormalizeURL is not idempotent for %q: got %q", tt.in, got)
			}
		})
	}
}

func TestDomainKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/foo/bar?x=1#y", "example.com_foo_bar"},
		{"http://example.com", "example.com"},
		{"http://example.com/", "example.com"},
		{"http://www.example.com/foo/", "example.com_foo"},
		{"http://sub.www.example.com", "sub.www.example.com"},
		{"http://example.com:8080/a", "example.com-8080_a"},
		{"http://example.com#top", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DomainKey(tt.in)
			if err != nil {
				t.Fatalf("DomainKey(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DomainKey(%q): expected %q, got %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestDomainKeyInvalid(t *testing.T) {
	if _, err := DomainKey("http://exa mple.com/%zz"); err == nil {
		t.Error("Expected error for unparsable URL")
	}

	for _, in := range []string{"http://../", "http://..", "http://./"} {
		if _, err := DomainKey(in); !errors.Is(err, ErrInvalidDomainKey) {
			t.Errorf("DomainKey(%q): expected ErrInvalidDomainKey, got %v", in, err)
		}
	}

	// Dots in the path are flattened into the key and stay inside the folder.
	if got, err := DomainKey("http://../a"); err != nil || got != ".._a" {
		t.Errorf("DomainKey(http://../a): expected .._a, got %q (%v)", got, err)
	}
}
