package siteshot

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/root4loot/goutils/fileutil"
	"github.com/root4loot/siteshot/pkg/capture"
	"github.com/sirupsen/logrus"
)

// Runner captures the targets of a run, one after the other.
type Runner struct {
	Settings *Settings
	Logger   logrus.FieldLogger
	Engine   capture.Engine      // Browser engine, from Settings.BrowserEngine by default
	Now      func() time.Time    // Clock used for {timestamp}
	Sleep    func(time.Duration) // Used for the settle delay
}

// Result is the outcome of capturing one target.
type Result struct {
	Target  string   // Line from the domains file
	URL     string   // Normalized URL
	Files   []string // Images written
	Skipped []string // Existing images left untouched
	Error   error
}

// Summary aggregates the results of a run.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Files     int
}

// Add counts result into the summary.
func (s *Summary) Add(result Result) {
	s.Processed++
	s.Files += len(result.Files)
	if result.Error != nil {
		s.Failed++
	} else {
		s.Succeeded++
	}
}

// NewRunner returns a runner for settings. A nil logger discards output.
func NewRunner(settings *Settings, logger logrus.FieldLogger) (*Runner, error) {
	if settings == nil {
		settings = DefaultSettings()
	}

	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	engine, err := capture.EngineByName(settings.BrowserEngine)
	if err != nil {
		return nil, err
	}

	return &Runner{
		Settings: settings,
		Logger:   logger,
		Engine:   engine,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}, nil
}

// Run captures every target listed in domainsFile.
func (r *Runner) Run(domainsFile string) (Summary, error) {
	targets, err := readFileLines(domainsFile)
	if err != nil {
		return Summary{}, fmt.Errorf("error reading %s: %w", domainsFile, err)
	}
	return r.RunDomains(targets)
}

// RunDomains captures targets in order. A failing target never stops the run.
func (r *Runner) RunDomains(targets []string) (Summary, error) {
	var summary Summary

	if err := os.MkdirAll(r.Settings.OutputFolder, os.ModePerm); err != nil {
		return summary, fmt.Errorf("error creating output folder: %w", err)
	}

	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		summary.Add(r.Single(target))
	}

	r.Logger.Infof("Processed %d targets: %d succeeded, %d failed, %d images saved",
		summary.Processed, summary.Succeeded, summary.Failed, summary.Files)

	return summary, nil
}

// readFileLines reads the non-empty, trimmed lines of a file.
func readFileLines(path string) (lines []string, err error) {
	all, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	for _, line := range all {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}
