package booking

import (
	"context"
	"time"

	"hotel-price-scraper/browser"
	"hotel-price-scraper/config"
)

// fakeFetcher serves canned pages and errors by URL and records visit order.
type fakeFetcher struct {
	pages     map[string]string
	redirects map[string]string
	errs      map[string]error
	visited   []string
	limits    []browser.Timeouts
	selectors []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url, readySelector string, limits browser.Timeouts) (*browser.Page, error) {
	f.visited = append(f.visited, url)
	f.limits = append(f.limits, limits)
	f.selectors = append(f.selectors, readySelector)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	loc := url
	if r, ok := f.redirects[url]; ok {
		loc = r
	}
	return &browser.Page{URL: loc, HTML: f.pages[url]}, nil
}

func timeoutErr(url string, d time.Duration) error {
	return &browser.NavigationError{URL: url, Timeout: d, Err: browser.ErrNavigationTimeout}
}

func testConfig() *config.Config {
	return &config.Config{
		NavTimeout:         60 * time.Second,
		ListingWaitTimeout: 30 * time.Second,
		DetailNavTimeout:   60 * time.Second,
		MaxListings:        10,
	}
}

var fixedNow = func() time.Time { return time.Date(2024, 4, 20, 8, 30, 0, 0, time.UTC) }
