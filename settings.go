package siteshot

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/root4loot/siteshot/pkg/capture"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// ErrSettingsNotFound is returned by LoadSettings when the settings file does not exist.
var ErrSettingsNotFound = errors.New("settings file not found")

const (
	DefaultSettingsFile = "settings.txt"
	DefaultDomainsFile  = "domains.txt"
	DefaultFilename     = "{domain}_{timestamp}.{image_save_type}"

	settingsSection = "Settings"
)

// Settings holds the options of a run. It is loaded once and not changed afterwards.
type Settings struct {
	CaptureSize          capture.Size // Capture size used in single-size mode
	ImageSaveType        string       // Image extension, without dot
	OutputFolder         string       // Folder images are written to
	WaitingTime          int          // Settle delay after navigation (seconds)
	FilenameFormat       string       // Filename template
	FullscreenScreenshot bool         // Size the viewport to the full page
	CreateBaseFolders    bool         // Capture every device preset into a per-domain folder

	SkipExisting            bool   // Do not overwrite images that already exist
	BrowserEngine           string // rod or chromedp
	BrowserPath             string // Browser binary
	UserAgent               string // User agent
	IgnoreCertificateErrors bool   // Ignore certificate errors
	LogFile                 string // Also write logs to this file
}

// DefaultSettings returns the settings used for every missing key.
func DefaultSettings() *Settings {
	return &Settings{
		CaptureSize:    capture.Size{Width: 1920, Height: 1080},
		ImageSaveType:  "png",
		OutputFolder:   "screenshots",
		WaitingTime:    10,
		FilenameFormat: DefaultFilename,
		BrowserEngine:  "rod",
	}
}

// LoadSettings reads the [Settings] section of an INI file. Missing keys and
// malformed values fall back to DefaultSettings; malformed values are logged.
func LoadSettings(path string, logger logrus.FieldLogger) (*Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return nil, err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings %s: %w", path, err)
	}

	return parseSettings(cfg.Section(settingsSection), logger), nil
}

func parseSettings(sec *ini.Section, logger logrus.FieldLogger) *Settings {
	s := DefaultSettings()
	l := &lenient{sec: sec, logger: logger}

	if v := l.str("capture_size", ""); v != "" {
		size, err := capture.ParseSize(v)
		if err != nil {
			l.invalid("capture_size", v, s.CaptureSize)
		} else {
			s.CaptureSize = size
		}
	}

	if v := l.str("image_save_type", ""); v != "" {
		ext := strings.ToLower(strings.TrimPrefix(v, "."))
		if _, err := capture.FormatFor(ext); err != nil {
			l.invalid("image_save_type", v, s.ImageSaveType)
		} else {
			s.ImageSaveType = ext
		}
	}

	if v := l.str("browser_engine", ""); v != "" {
		if _, err := capture.EngineByName(v); err != nil {
			l.invalid("browser_engine", v, s.BrowserEngine)
		} else {
			s.BrowserEngine = strings.ToLower(v)
		}
	}

	s.OutputFolder = l.str("output_folder", s.OutputFolder)
	s.WaitingTime = l.nonNegative("waiting_time", s.WaitingTime)
	s.FilenameFormat = l.str("filename_format", s.FilenameFormat)
	s.FullscreenScreenshot = l.boolean("fullscreen_screenshot", s.FullscreenScreenshot)
	s.CreateBaseFolders = l.boolean("create_base_folders", s.CreateBaseFolders)
	s.SkipExisting = l.boolean("skip_existing", s.SkipExisting)
	s.BrowserPath = l.str("browser_path", s.BrowserPath)
	s.UserAgent = l.str("user_agent", s.UserAgent)
	s.IgnoreCertificateErrors = l.boolean("ignore_certificate_errors", s.IgnoreCertificateErrors)
	s.LogFile = l.str("log_file", s.LogFile)

	return s
}

// lenient reads keys from a section, falling back to defaults instead of failing.
type lenient struct {
	sec    *ini.Section
	logger logrus.FieldLogger
}

func (l *lenient) str(key, def string) string {
	if !l.sec.HasKey(key) {
		return def
	}
	if v := strings.TrimSpace(l.sec.Key(key).String()); v != "" {
		return v
	}
	return def
}

func (l *lenient) nonNegative(key string, def int) int {
	v := l.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		l.invalid(key, v, def)
		return def
	}
	return n
}

func (l *lenient) boolean(key string, def bool) bool {
	v := l.str(key, "")
	if v == "" {
		return def
	}
	b, err := l.sec.Key(key).Bool()
	if err != nil {
		l.invalid(key, v, def)
		return def
	}
	return b
}

func (l *lenient) invalid(key, value string, def interface{}) {
	if l.logger != nil {
		l.logger.Warnf("Invalid %s %q in settings, using %v", key, value, def)
	}
}

// Preset is a device size used when CreateBaseFolders is enabled.
type Preset struct {
	Label string
	Size  capture.Size
}

// Presets are captured in this order.
var Presets = []Preset{
	{Label: "mobile", Size: capture.Size{Width: 360, Height: 640}},
	{Label: "tablet", Size: capture.Size{Width: 768, Height: 1024}},
	{Label: "laptop", Size: capture.Size{Width: 1366, Height: 768}},
	{Label: "desktop", Size: capture.Size{Width: 1920, Height: 1080}},
}

// CaptureOptions returns the browser options derived from the settings.
func (s *Settings) CaptureOptions() capture.Options {
	opts := capture.NewOptions()
	opts.WindowSize = s.CaptureSize
	opts.BrowserPath = s.BrowserPath
	opts.UserAgent = s.UserAgent
	opts.IgnoreCertificateErrors = s.IgnoreCertificateErrors
	return opts
}
