package capture

import (
	"fmt"
	"strconv"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// measureJS returns the full scrollable extents of the document.
const measureJS = `() => ({
	width: Math.max(document.body ? document.body.scrollWidth : 0, document.documentElement.scrollWidth),
	height: Math.max(document.body ? document.body.scrollHeight : 0, document.documentElement.scrollHeight)
})`

type rodPage struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Rod launches a local Chromium through go-rod.
func Rod(opts Options) (Page, error) {
	path := opts.BrowserPath
	if path == "" {
		path, _ = launcher.LookPath()
	}

	l := launcher.New().
		Headless(opts.Headless).
		Bin(path).
		NoSandbox(true).
		Set("window-size", strconv.Itoa(opts.WindowSize.Width)+","+strconv.Itoa(opts.WindowSize.Height))

	if opts.UserAgent != "" {
		l.Set("user-agent", opts.UserAgent)
	}

	if opts.IgnoreCertificateErrors {
		l.Set("ignore-certificate-errors", "true")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, err
	}

	p := &rodPage{launcher: l, browser: browser}

	p.page, err = browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	if err := p.Resize(opts.WindowSize); err != nil {
		_ = p.Close()
		return nil, err
	}

	return p, nil
}

func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return err
	}
	return p.page.WaitLoad()
}

func (p *rodPage) Measure() (Size, error) {
	res, err := p.page.Eval(measureJS)
	if err != nil {
		return Size{}, err
	}
	return Size{
		Width:  res.Value.Get("width").Int(),
		Height: res.Value.Get("height").Int(),
	}, nil
}

func (p *rodPage) Resize(size Size) error {
	return p.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             size.Width,
		Height:            size.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
}

func (p *rodPage) Screenshot(format Format) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{}

	switch format {
	case PNG:
		req.Format = proto.PageCaptureScreenshotFormatPng
	case JPEG:
		req.Format = proto.PageCaptureScreenshotFormatJpeg
	case WebP:
		req.Format = proto.PageCaptureScreenshotFormatWebp
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	return p.page.Screenshot(false, req)
}

func (p *rodPage) Close() error {
	err := p.browser.Close()
	if err != nil {
		p.launcher.Kill()
	}
	p.launcher.Cleanup()
	return err
}
