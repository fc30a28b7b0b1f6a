package services

import (
	"context"
	"fmt"
	"io"

	"hotel-price-scraper/config"
	"hotel-price-scraper/models"
	"hotel-price-scraper/storage"
	"hotel-price-scraper/utils"
)

// ListingScraper produces the result of a listing-mode run
type ListingScraper interface {
	Scrape(ctx context.Context, in config.ListingInput) (*models.ListingResult, error)
}

// DetailScraper produces the result of a detail-mode run
type DetailScraper interface {
	Scrape(ctx context.Context, in config.DetailInput) (*models.DetailResult, error)
}

// StoreOpener connects to the relational store
type StoreOpener func(ctx context.Context, creds storage.Credentials) (storage.PriceStore, error)

// Pipeline scrapes, then hands the result to the job dataset and, for detail
// runs with credentials, to the relational store.
type Pipeline struct {
	dataset   storage.Dataset
	openStore StoreOpener
	insights  *InsightService
	logger    *utils.Logger

	// CSV is an optional export; nil disables it.
	CSV *storage.CSVWriter
	// Report receives the terminal summary; nil disables it.
	Report io.Writer
}

// NewPipeline creates a Pipeline
func NewPipeline(dataset storage.Dataset, openStore StoreOpener, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		dataset:   dataset,
		openStore: openStore,
		insights:  NewInsightService(logger),
		logger:    logger,
	}
}

// RunListing scrapes one search page and pushes the result to the dataset.
// Scrape and dataset failures are returned; nothing is written on a scrape failure.
func (p *Pipeline) RunListing(ctx context.Context, scraper ListingScraper, in config.ListingInput) (*models.ListingResult, error) {
	res, err := scraper.Scrape(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := p.dataset.Push(ctx, res); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	if p.CSV != nil {
		if err := p.CSV.WriteListing(res); err != nil {
			p.logger.Error("Failed to write CSV: %v", err)
			// Non-fatal: the dataset already holds the result
		}
	}

	p.logger.Info("Scraping completed: %d hotels from %s", len(res.Hotels), res.SearchURL)
	if p.Report != nil {
		PrintListingReport(p.Report, res, p.insights.ListingReport(res))
	}
	return res, nil
}

// RunDetail scrapes the main hotel and its competitors, pushes the result to
// the dataset and, when target is storage.DatasetAndRelational, writes the
// price rows. Relational failures never fail the run.
func (p *Pipeline) RunDetail(ctx context.Context, scraper DetailScraper, in config.DetailInput, target storage.Target) (*models.DetailResult, error) {
	res, err := scraper.Scrape(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := p.dataset.Push(ctx, res); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	if p.CSV != nil {
		if err := p.CSV.WriteDetail(res); err != nil {
			p.logger.Error("Failed to write CSV: %v", err)
		}
	}

	switch t := target.(type) {
	case storage.DatasetAndRelational:
		written, total := p.persistRelational(ctx, t.Credentials, res)
		p.logger.Info("Relational store: %d/%d rows written", written, total)
	case storage.DatasetOnly:
		p.logger.Info("No relational store credentials, dataset only")
	}

	p.logger.Info("Main hotel: %s - %s", res.MainHotel.Name, res.MainHotel.Price)
	p.logger.Info("Competitors scraped: %d", len(res.Competitors))
	if p.Report != nil {
		PrintComparisonReport(p.Report, res, p.insights.ComparisonReport(res))
	}
	return res, nil
}

// persistRelational writes the main hotel row and one row per competitor.
// Each row is independent; any failure, panics included, is logged and
// swallowed here.
func (p *Pipeline) persistRelational(ctx context.Context, creds storage.Credentials, res *models.DetailResult) (written, total int) {
	total = 1 + len(res.Competitors)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Relational store phase aborted: %v", r)
		}
	}()

	store, err := p.openStore(ctx, creds)
	if err != nil {
		p.logger.Error("Cannot connect to relational store: %v", err)
		return 0, total
	}
	defer func() {
		if err := store.Close(); err != nil {
			p.logger.Warn("Closing relational store: %v", err)
		}
	}()

	err = store.InsertHotelPrice(ctx, storage.HotelPriceRow{
		HotelID:     res.HotelID,
		CheckIn:     res.CheckIn,
		CheckOut:    res.CheckOut,
		Price:       nullPrice(res.MainHotel.Price),
		Rating:      nullRating(res.MainHotel.Rating),
		ScrapedAt:   res.ScrapedAt,
		IsMainHotel: true,
	})
	if err != nil {
		p.logger.Error("Failed to save main hotel price: %v", err)
	} else {
		written++
	}

	for _, c := range res.Competitors {
		err := store.InsertCompetitorPrice(ctx, storage.CompetitorPriceRow{
			HotelID:        res.HotelID,
			CompetitorName: c.Name,
			CompetitorURL:  c.URL,
			CheckIn:        res.CheckIn,
			CheckOut:       res.CheckOut,
			Price:          nullPrice(c.Price),
			Rating:         nullRating(c.Rating),
			ScrapedAt:      res.ScrapedAt,
		})
		if err != nil {
			p.logger.Error("Failed to save competitor price for %s: %v", c.URL, err)
			continue
		}
		written++
	}
	return written, total
}
