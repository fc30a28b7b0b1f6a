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

// DetailScraper visits a main hotel and its competitors one page at a time
type DetailScraper struct {
	fetcher     browser.Fetcher
	sel         config.DetailSelectors
	limits      browser.Timeouts
	rateLimiter *utils.RateLimiter
	logger      *utils.Logger

	Now func() time.Time
}

// NewDetailScraper creates a DetailScraper
func NewDetailScraper(fetcher browser.Fetcher, cfg *config.Config, sel config.Selectors, logger *utils.Logger) *DetailScraper {
	return &DetailScraper{
		fetcher:     fetcher,
		sel:         sel.Detail,
		// the ready marker shares the full navigation bound
		limits:      browser.Timeouts{Navigation: cfg.DetailNavTimeout},
		rateLimiter: utils.NewRateLimiter(cfg.RateLimitDelay),
		logger:      logger,
		Now:         time.Now,
	}
}

// Scrape visits the main hotel, then each competitor in input order.
//
// A failed main hotel aborts the run: the comparison has nothing to compare
// against. A failed competitor is logged and recorded as models.FailedDetail.
func (s *DetailScraper) Scrape(ctx context.Context, in config.DetailInput) (*models.DetailResult, error) {
	tracker := utils.NewURLTracker()
	tracker.Add(in.HotelURL)
	for _, u := range in.CompetitorURLs {
		tracker.Add(u)
	}
	for _, dup := range tracker.Duplicates() {
		s.logger.Warn("Target listed more than once, visiting every occurrence: %s", dup)
	}

	s.logger.Info("Scraping main hotel: %s", in.HotelURL)
	mainHotel, err := s.visit(ctx, in.HotelURL)
	if err != nil {
		return nil, fmt.Errorf("main hotel: %w", err)
	}

	competitors := make([]models.DetailRecord, 0, len(in.CompetitorURLs))
	for i, u := range in.CompetitorURLs {
		s.logger.Info("Scraping competitor %d/%d: %s", i+1, len(in.CompetitorURLs), u)
		rec, err := s.visit(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("run cancelled: %w", ctx.Err())
			}
			s.logger.Error("Competitor %s failed: %v", u, err)
			rec = models.FailedDetail(u, err)
		}
		competitors = append(competitors, rec)
	}

	return &models.DetailResult{
		HotelID:     in.HotelID,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		ScrapedAt:   models.FormatTimestamp(s.Now()),
		MainHotel:   mainHotel,
		Competitors: competitors,
	}, nil
}

func (s *DetailScraper) visit(ctx context.Context, url string) (models.DetailRecord, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return models.DetailRecord{}, err
	}
	page, err := s.fetcher.Fetch(ctx, url, s.sel.Ready, s.limits)
	if err != nil {
		return models.DetailRecord{}, err
	}
	resolved := page.URL
	if resolved == "" {
		resolved = url
	}
	rec, err := ExtractDetail(page.HTML, resolved, s.sel)
	if err != nil {
		return models.DetailRecord{}, err
	}
	s.logger.Debug("  %s | %s | %s", rec.Name, rec.Price, rec.Rating)
	return rec, nil
}
