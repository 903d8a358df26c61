package capture

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type chromedpPage struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Chromedp launches a local Chrome through chromedp.
func Chromedp(opts Options) (Page, error) {
	// Session flags go after the defaults so they override them.
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(opts.WindowSize.Width, opts.WindowSize.Height),
		chromedp.Flag("headless", opts.Headless),
	)

	if opts.BrowserPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BrowserPath))
	}

	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.IgnoreCertificateErrors {
		allocOpts = append(allocOpts, chromedp.Flag("ignore-certificate-errors", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	p := &chromedpPage{ctx: ctx, cancel: cancel, cancelAlloc: cancelAlloc}

	// The first Run starts the browser.
	if err := chromedp.Run(ctx, chromedp.EmulateViewport(int64(opts.WindowSize.Width), int64(opts.WindowSize.Height))); err != nil {
		_ = p.Close()
		return nil, err
	}

	return p, nil
}

func (p *chromedpPage) Navigate(url string) error {
	return chromedp.Run(p.ctx, chromedp.Navigate(url))
}

func (p *chromedpPage) Measure() (Size, error) {
	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	// chromedp evaluates expressions, not functions.
	if err := chromedp.Run(p.ctx, chromedp.Evaluate("("+measureJS+")()", &dims)); err != nil {
		return Size{}, err
	}
	return Size{Width: dims.Width, Height: dims.Height}, nil
}

func (p *chromedpPage) Resize(size Size) error {
	return chromedp.Run(p.ctx, chromedp.EmulateViewport(int64(size.Width), int64(size.Height)))
}

func (p *chromedpPage) Screenshot(format Format) ([]byte, error) {
	var f page.CaptureScreenshotFormat

	switch format {
	case PNG:
		f = page.CaptureScreenshotFormatPng
	case JPEG:
		f = page.CaptureScreenshotFormatJpeg
	case WebP:
		f = page.CaptureScreenshotFormatWebp
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	var buf []byte
	err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().WithFormat(f).Do(ctx)
		return err
	}))
	return buf, err
}

func (p *chromedpPage) Close() error {
	err := chromedp.Cancel(p.ctx)
	p.cancel()
	p.cancelAlloc()
	return err
}
