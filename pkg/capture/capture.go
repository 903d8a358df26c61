package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSize is returned for sizes that are not two positive integers.
var ErrInvalidSize = errors.New("invalid size")

// Size is a width x height pair in CSS pixels.
type Size struct {
	Width  int
	Height int
}

// ParseSize parses sizes of the form "1920x1080".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	size := Size{Width: width, Height: height}
	if !size.Valid() {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return size, nil
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Options contains the options used to launch a browser session.
type Options struct {
	WindowSize              Size   // Initial window size
	Headless                bool   // Run in headless mode
	BrowserPath             string // Browser binary, looked up when empty
	UserAgent               string // User agent, browser default when empty
	IgnoreCertificateErrors bool   // Ignore certificate errors
}

// NewOptions returns Options initialized with default values.
func NewOptions() Options {
	return Options{
		WindowSize: Size{Width: 1920, Height: 1080},
		Headless:   true,
	}
}

// Page is the surface a browser engine has to provide.
type Page interface {
	// Navigate loads url and returns once the browser reports the load event.
	Navigate(url string) error
	// Measure returns the full scrollable size of the rendered document.
	Measure() (Size, error)
	// Resize overrides the viewport used by the next screenshot.
	Resize(size Size) error
	// Screenshot serializes the current viewport.
	Screenshot(format Format) ([]byte, error)
	// Close shuts the browser down.
	Close() error
}

// Engine launches a browser and returns its page.
type Engine func(opts Options) (Page, error)

// Driver owns one browser session for the duration of a capture.
type Driver struct {
	page     Page
	wait     time.Duration
	released bool

	// Sleep is used for the settle delay.
	Sleep func(time.Duration)
}

// Acquire launches a session with engine. The returned driver must be released.
func Acquire(engine Engine, opts Options, wait time.Duration) (*Driver, error) {
	if engine == nil {
		return nil, errors.New("no browser engine")
	}
	if !opts.WindowSize.Valid() {
		return nil, fmt.Errorf("window size %s: %w", opts.WindowSize, ErrInvalidSize)
	}

	page, err := engine(opts)
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	return &Driver{page: page, wait: wait, Sleep: time.Sleep}, nil
}

// Release closes the session. Calling it again is a no-op.
func (d *Driver) Release() error {
	if d == nil || d.released {
		return nil
	}
	d.released = true
	return d.page.Close()
}

// Open navigates to url and then waits the settle delay.
func (d *Driver) Open(url string) error {
	if err := d.page.Navigate(url); err != nil {
		return fmt.Errorf("error navigating to %s: %w", url, err)
	}
	d.Settle()
	return nil
}

// Settle sleeps for the configured settle delay.
func (d *Driver) Settle() {
	if d.wait > 0 {
		d.Sleep(d.wait)
	}
}

// MeasureFullPage returns the full scrollable extents of the current document.
func (d *Driver) MeasureFullPage() (Size, error) {
	size, err := d.page.Measure()
	if err != nil {
		return Size{}, fmt.Errorf("error measuring page: %w", err)
	}
	if !size.Valid() {
		return Size{}, fmt.Errorf("page measured as %s: %w", size, ErrInvalidSize)
	}
	return size, nil
}

// Resize sets the viewport to size.
func (d *Driver) Resize(size Size) error {
	if !size.Valid() {
		return fmt.Errorf("resize to %s: %w", size, ErrInvalidSize)
	}
	return d.page.Resize(size)
}

// Capture writes the current viewport to path, in the format given by its extension.
func (d *Driver) Capture(path string) error {
	format, err := FormatFor(filepath.Ext(path))
	if err != nil {
		return err
	}

	raw, err := d.page.Screenshot(format.Native())
	if err != nil {
		return fmt.Errorf("error capturing screenshot: %w", err)
	}

	data, err := Encode(raw, format)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
