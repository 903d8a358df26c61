package siteshot

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

// ErrUnknownPlaceholder is returned when a filename format uses a tag that has no value.
var ErrUnknownPlaceholder = errors.New("unknown placeholder in filename format")

// TimestampLayout is the layout of the {timestamp} placeholder.
const TimestampLayout = "2006-01-02_15-04-05"

// FilenameValues are the values available to a filename format.
type FilenameValues struct {
	Domain        string
	Timestamp     string
	Label         string
	CaptureSize   string
	ImageSaveType string
}

func (v FilenameValues) lookup(tag string) (string, bool) {
	switch tag {
	case "domain":
		return v.Domain, true
	case "timestamp":
		return v.Timestamp, true
	case "label":
		return v.Label, true
	case "capture_size":
		return v.CaptureSize, true
	case "image_save_type":
		return v.ImageSaveType, true
	}
	return "", false
}

// ComposeFilename expands {placeholders} in format and makes sure the result
// ends with the image extension.
func ComposeFilename(format string, v FilenameValues) (string, error) {
	name, err := fasttemplate.ExecuteFuncStringWithErr(format, "{", "}", func(w io.Writer, tag string) (int, error) {
		value, ok := v.lookup(tag)
		if !ok {
			return 0, fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, tag)
		}
		return w.Write([]byte(value))
	})
	if err != nil {
		return "", err
	}

	return EnsureExtension(name, v.ImageSaveType), nil
}

// EnsureExtension appends "."+ext unless name already ends with it.
func EnsureExtension(name, ext string) string {
	suffix := "." + ext
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}

// Timestamp formats t in local time using TimestampLayout.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
