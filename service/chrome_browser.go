package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/ludo-technologies/pyformat/domain"
)

// ChromeBrowser launches headless Chrome through the DevTools protocol
type ChromeBrowser struct {
	execPath string
	width    int
}

// NewChromeBrowser creates a launcher. An empty execPath lets chromedp
// search the usual install locations.
func NewChromeBrowser(execPath string, width int) *ChromeBrowser {
	if width <= 0 {
		width = domain.DefaultImageWidth
	}
	return &ChromeBrowser{execPath: execPath, width: width}
}

// Launch implements domain.Browser
func (b *ChromeBrowser) Launch(ctx context.Context) (domain.BrowserSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.WindowSize(b.width, 800),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	started := make(chan error, 1)
	go func() { started <- chromedp.Run(browserCtx) }()

	select {
	case err := <-started:
		if err != nil {
			browserCancel()
			allocCancel()
			return nil, domain.NewResourceError("failed to start headless Chrome", err)
		}
	case <-ctx.Done():
		browserCancel()
		allocCancel()
		return nil, domain.NewResourceError("timed out starting headless Chrome", ctx.Err())
	}

	return &chromeSession{ctx: browserCtx, cancel: browserCancel, allocCancel: allocCancel}, nil
}

// chromeSession is one running browser process
type chromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// Capture implements domain.BrowserSession
func (s *chromeSession) Capture(ctx context.Context, url, selector string) ([]byte, error) {
	tctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var dcancel context.CancelFunc
		tctx, dcancel = context.WithDeadline(tctx, deadline)
		defer dcancel()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var png []byte
	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &png, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("page did not render in time: %w", context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return png, nil
}

// Close implements domain.BrowserSession
func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to stop headless Chrome: %w", err)
	}
	return nil
}

var _ domain.Browser = (*ChromeBrowser)(nil)
