package siteshot

import (
	"io"

	"github.com/root4loot/goutils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a siteshot logger writing timestamped, level-tagged lines to w.
// The goutils formatter is replaced since it prints no timestamps.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewLogger("siteshot")
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// AddLogFile tees logger output into a size-rotated file. The returned closer
// flushes and closes the file.
func AddLogFile(logger *log.Logger, path string) io.Closer {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger.SetOutput(io.MultiWriter(logger.Out, file))
	return file
}
