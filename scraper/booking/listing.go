// Package booking scrapes hotel search results and hotel pages of the
// booking site through a browser.Fetcher.
package booking

import (
	"context"
	"fmt"
	"time"

	"hotel-price-scraper/browser"
	"hotel-price-scraper/config"
	"hotel-price-scraper/models"
	"hotel-price-scraper/utils"
)

// ListingScraper extracts the first hotel cards of one search results page
type ListingScraper struct {
	fetcher browser.Fetcher
	sel     config.ListingSelectors
	limits  browser.Timeouts
	max     int
	logger  *utils.Logger

	// Now stamps results; replaced in tests.
	Now func() time.Time
}

// NewListingScraper creates a ListingScraper
func NewListingScraper(fetcher browser.Fetcher, cfg *config.Config, sel config.Selectors, logger *utils.Logger) *ListingScraper {
	return &ListingScraper{
		fetcher: fetcher,
		sel:     sel.Listing,
		limits:  browser.Timeouts{Navigation: cfg.NavTimeout, Wait: cfg.ListingWaitTimeout},
		max:     cfg.MaxListings,
		logger:  logger,
		Now:     time.Now,
	}
}

// Scrape loads the search page, waits for the hotel cards and bundles them
// into a single result.
func (s *ListingScraper) Scrape(ctx context.Context, in config.ListingInput) (*models.ListingResult, error) {
	s.logger.Info("Processing %s", in.SearchURL)

	page, err := s.fetcher.Fetch(ctx, in.SearchURL, s.sel.Card, s.limits)
	if err != nil {
		return nil, fmt.Errorf("search page: %w", err)
	}

	hotels, err := ExtractListings(page.HTML, page.URL, s.sel, s.max)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Found %d hotels", len(hotels))

	return &models.ListingResult{
		SearchURL: in.SearchURL,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		ScrapedAt: models.FormatTimestamp(s.Now()),
		Hotels:    hotels,
	}, nil
}
