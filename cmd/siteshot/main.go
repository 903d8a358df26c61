package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/root4loot/siteshot"
)

const (
	author  = "@danielantonsen"
	version = "0.1.0"
	usage   = `USAGE:
  siteshot [options]

INPUT:
  -l,   --list                   input file with list of targets (one per line)         (Default: domains.txt)
  -c,   --config                 settings file                                           (Default: settings.txt)

OUTPUT:
        --debug                  enable debug mode
        --version                display version

Capture options are read from the [Settings] section of the settings file:
  capture_size, image_save_type, output_folder, waiting_time, filename_format,
  fullscreen_screenshot, create_base_folders, skip_existing, browser_engine,
  browser_path, user_agent, ignore_certificate_errors, log_file
`
)

type cli struct {
	SettingsFile string
	Infile       string
	Debug        bool
	Help         bool
	Version      bool
}

// NewCLI returns a cli initialized with default values.
func NewCLI() *cli {
	return &cli{
		SettingsFile: siteshot.DefaultSettingsFile,
		Infile:       siteshot.DefaultDomainsFile,
	}
}

func main() {
	cli := NewCLI()
	if err := cli.parseFlags(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if cli.Help {
		fmt.Print(usage)
		os.Exit(0)
	}

	if cli.Version {
		fmt.Println("siteshot", version, "by", author)
		os.Exit(0)
	}

	os.Exit(cli.run(os.Stderr))
}

func (cli *cli) parseFlags(args []string) error {
	fs := flag.NewFlagSet("siteshot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// INPUT
	fs.StringVar(&cli.Infile, "list", cli.Infile, "")
	fs.StringVar(&cli.Infile, "l", cli.Infile, "")
	fs.StringVar(&cli.SettingsFile, "config", cli.SettingsFile, "")
	fs.StringVar(&cli.SettingsFile, "c", cli.SettingsFile, "")

	// OUTPUT
	fs.BoolVar(&cli.Debug, "debug", false, "")
	fs.BoolVar(&cli.Help, "help", false, "")
	fs.BoolVar(&cli.Help, "h", false, "")
	fs.BoolVar(&cli.Version, "version", false, "")

	return fs.Parse(args)
}

// run executes one batch and returns the process exit status.
func (cli *cli) run(stderr io.Writer) int {
	logger := siteshot.NewLogger(stderr, cli.Debug)

	settings, err := siteshot.LoadSettings(cli.SettingsFile, logger)
	if err != nil {
		if errors.Is(err, siteshot.ErrSettingsNotFound) {
			logger.Errorf("Settings file not found: %s", cli.SettingsFile)
		} else {
			logger.Errorf("Error loading settings: %v", err)
		}
		return 1
	}

	if settings.LogFile != "" {
		logFile := siteshot.AddLogFile(logger, settings.LogFile)
		defer logFile.Close()
	}

	runner, err := siteshot.NewRunner(settings, logger)
	if err != nil {
		logger.Errorf("Error creating runner: %v", err)
		return 1
	}

	if _, err := runner.Run(cli.Infile); err != nil {
		logger.Error(err)
		return 1
	}

	return 0
}
