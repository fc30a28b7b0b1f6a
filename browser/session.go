// Package browser owns the headless Chrome session shared by every page
// visit of a run.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"hotel-price-scraper/utils"
)

// ErrNavigationTimeout is returned when a page or its ready selector did not
// show up within the allowed time.
var ErrNavigationTimeout = errors.New("navigation timeout")

// NavigationError describes a failed page visit.
type NavigationError struct {
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *NavigationError) Error() string {
	if errors.Is(e.Err, ErrNavigationTimeout) {
		return fmt.Sprintf("%s: %s not ready after %s", ErrNavigationTimeout, e.URL, e.Timeout)
	}
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Page is a snapshot of a rendered document.
type Page struct {
	// URL is the location after redirects.
	URL  string
	HTML string
}

// Timeouts bounds one page visit. Navigation covers the load of the page;
// Wait covers the ready selector afterwards. A zero Wait makes the selector
// share the navigation deadline.
type Timeouts struct {
	Navigation time.Duration
	Wait       time.Duration
}

// Fetcher loads a URL and returns the rendered document once readySelector
// is present.
type Fetcher interface {
	Fetch(ctx context.Context, url, readySelector string, limits Timeouts) (*Page, error)
}

// Options configures the Chrome process.
type Options struct {
	Headless  bool
	UserAgent string
}

// Session is one Chrome process with one tab, reused for all visits.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *utils.Logger
	once   sync.Once
}

// Open starts Chrome. The caller must Close the session on every exit path.
func Open(ctx context.Context, opts Options, logger *utils.Logger) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.WindowSize(1280, 900),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &Session{
		ctx: tabCtx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
		logger: logger,
	}

	// Run with no actions launches the browser so startup errors surface here.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Debug("Browser session started (headless=%t)", opts.Headless)
	return s, nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		s.logger.Debug("Browser session closed")
	})
}

// Fetch navigates to url, then waits for readySelector. Each phase is
// bounded by its own limit.
func (s *Session) Fetch(ctx context.Context, url, readySelector string, limits Timeouts) (*Page, error) {
	navCtx, cancelNav := context.WithTimeout(s.ctx, limits.Navigation)
	defer cancelNav()
	// s.ctx descends from the ctx given to Open, not from the one given to
	// Fetch, so forward the caller's cancellation by hand
	stopNav := context.AfterFunc(ctx, cancelNav)
	defer stopNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return nil, classify(url, limits.Navigation, navCtx.Err(), err)
	}

	waitCtx, wait := navCtx, limits.Navigation
	if limits.Wait > 0 {
		var cancelWait context.CancelFunc
		waitCtx, cancelWait = context.WithTimeout(s.ctx, limits.Wait)
		defer cancelWait()
		stopWait := context.AfterFunc(ctx, cancelWait)
		defer stopWait()
		wait = limits.Wait
	}

	var page Page
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(readySelector, chromedp.ByQuery),
		chromedp.Location(&page.URL),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, classify(url, wait, waitCtx.Err(), err)
	}
	return &page, nil
}

// classify maps a chromedp error onto a NavigationError; a deadline on the
// visit context becomes ErrNavigationTimeout.
func classify(url string, timeout time.Duration, ctxErr, err error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &NavigationError{URL: url, Timeout: timeout, Err: ErrNavigationTimeout}
	}
	return &NavigationError{URL: url, Timeout: timeout, Err: err}
}
