package siteshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/root4loot/siteshot/pkg/capture"
)

// Single captures one target. Failures are logged and returned in the result;
// they never propagate to the caller.
func (r *Runner) Single(target string) (result Result) {
	result = Result{Target: target, URL: NormalizeURL(target)}
	r.Logger.Debugf("Attempting capture on %s", result.URL)

	defer func() {
		if p := recover(); p != nil {
			result.Error = fmt.Errorf("unexpected error: %v", p)
			r.handleCaptureError(target, result.Error)
		}
	}()

	if err := r.worker(&result); err != nil {
		result.Error = err
		r.handleCaptureError(target, err)
	}

	return result
}

func (r *Runner) worker(result *Result) error {
	key, err := DomainKey(result.URL)
	if err != nil {
		return fmt.Errorf("invalid URL %s: %w", result.URL, err)
	}

	wait := time.Duration(r.Settings.WaitingTime) * time.Second
	driver, err := capture.Acquire(r.Engine, r.Settings.CaptureOptions(), wait)
	if err != nil {
		return err
	}
	if r.Sleep != nil {
		driver.Sleep = r.Sleep
	}
	defer func() {
		if err := driver.Release(); err != nil {
			r.Logger.Debugf("Error closing browser for %s: %v", result.URL, err)
		}
	}()

	if err := driver.Open(result.URL); err != nil {
		return err
	}

	// Measured after the settle delay so late layout is included.
	var full capture.Size
	if r.Settings.FullscreenScreenshot {
		full, err = driver.MeasureFullPage()
		if err != nil {
			return err
		}
		r.Logger.Debugf("Full page size of %s is %s", result.URL, full)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	timestamp := Timestamp(now())

	if r.Settings.CreateBaseFolders {
		return r.capturePresets(driver, result, key, timestamp, full)
	}
	return r.captureSingle(driver, result, key, timestamp, full)
}

// captureSingle writes one image at the capture size, or at the full page size.
func (r *Runner) captureSingle(driver *capture.Driver, result *Result, key, timestamp string, full capture.Size) error {
	size := r.Settings.CaptureSize
	values := FilenameValues{
		Domain:        key,
		Timestamp:     timestamp,
		Label:         "custom",
		CaptureSize:   size.String(),
		ImageSaveType: r.Settings.ImageSaveType,
	}

	if r.Settings.FullscreenScreenshot {
		size = full
		values.Label += "_fullscreen"
		values.CaptureSize = "fullscreen"
	}

	path, err := r.composePath(r.Settings.OutputFolder, values)
	if err != nil {
		return err
	}

	if r.exists(result, path) {
		return nil
	}

	if err := driver.Resize(size); err != nil {
		return err
	}

	if err := r.save(driver, result, path); err != nil {
		return err
	}

	r.Logger.Infof("Screenshot saved for %s with capture size %s in %s", result.URL, size, path)
	return nil
}

// capturePresets writes one image per device preset into a per-domain folder.
// With fullscreen enabled every preset is resized to the full page, so all images
// show the same render.
func (r *Runner) capturePresets(driver *capture.Driver, result *Result, key, timestamp string, full capture.Size) error {
	folder := filepath.Join(r.Settings.OutputFolder, key)
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return fmt.Errorf("error creating folder %s: %w", folder, err)
	}

	if r.Settings.FullscreenScreenshot {
		r.Logger.Warnf("Fullscreen is enabled: every preset for %s is captured at %s", result.URL, full)
	}

	for _, preset := range Presets {
		size := preset.Size
		sizeLabel := preset.Size.String()
		if r.Settings.FullscreenScreenshot {
			size = full
			sizeLabel += "_fullscreen"
		}

		path, err := r.composePath(folder, FilenameValues{
			Domain:        key,
			Timestamp:     timestamp,
			Label:         preset.Label,
			CaptureSize:   sizeLabel,
			ImageSaveType: r.Settings.ImageSaveType,
		})
		if err != nil {
			return err
		}

		if r.exists(result, path) {
			continue
		}

		if err := driver.Resize(size); err != nil {
			return fmt.Errorf("error resizing to %s preset: %w", preset.Label, err)
		}
		driver.Settle()

		if err := r.save(driver, result, path); err != nil {
			return err
		}

		r.Logger.Infof("Screenshot saved for %s at size %s in %s", result.URL, preset.Size, path)
	}

	return nil
}

func (r *Runner) composePath(folder string, values FilenameValues) (string, error) {
	name, err := ComposeFilename(r.Settings.FilenameFormat, values)
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, name), nil
}

// exists reports whether path should be left alone because it is already there.
func (r *Runner) exists(result *Result, path string) bool {
	if !r.Settings.SkipExisting {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}

	result.Skipped = append(result.Skipped, path)
	r.Logger.Infof("Skipping %s: %s already exists", result.URL, path)
	return true
}

func (r *Runner) save(driver *capture.Driver, result *Result, path string) error {
	if err := driver.Capture(path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	result.Files = append(result.Files, path)
	return nil
}

func (r *Runner) handleCaptureError(target string, err error) {
	message := err.Error()
	if isDNSError(err) {
		message = "DNS lookup failed: " + message
	}

	r.Logger.Errorf("Error capturing screenshot for %s: %s", target, message)
}

func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	message := err.Error()
	return strings.Contains(message, "net::ERR_NAME_NOT_RESOLVED") ||
		strings.Contains(message, "no such host")
}
