package services

import (
	"sort"

	"hotel-price-scraper/models"
	"hotel-price-scraper/utils"
)

// InsightService computes price figures from a run's result
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// ListingReport summarises the hotels of one search page
func (s *InsightService) ListingReport(res *models.ListingResult) *models.ListingReport {
	report := &models.ListingReport{TotalHotels: len(res.Hotels)}
	if len(res.Hotels) == 0 {
		s.logger.Warn("No hotels to generate insights from")
		return report
	}

	var total float64
	for i := range res.Hotels {
		h := &res.Hotels[i]
		price, ok := ParsePrice(h.Price)
		if !ok {
			continue
		}
		report.PricedHotels++
		total += price
		if report.Cheapest == nil || price < report.MinPrice {
			report.MinPrice = price
			report.Cheapest = h
		}
		if price > report.MaxPrice {
			report.MaxPrice = price
		}
	}
	if report.PricedHotels > 0 {
		report.AveragePrice = total / float64(report.PricedHotels)
	}

	// Top 3 highest-rated
	rated := make([]models.ListingRecord, 0, len(res.Hotels))
	for _, h := range res.Hotels {
		if _, ok := ParseRating(h.Rating); ok {
			rated = append(rated, h)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		ri, _ := ParseRating(rated[i].Rating)
		rj, _ := ParseRating(rated[j].Rating)
		return ri > rj
	})
	report.TopRated = rated[:min(3, len(rated))]

	return report
}

// ComparisonReport places the main hotel's price among its competitors.
// Failed targets and unpriced pages are counted but left out of the figures.
func (s *InsightService) ComparisonReport(res *models.DetailResult) *models.ComparisonReport {
	report := &models.ComparisonReport{
		MainName:    res.MainHotel.Name,
		Competitors: len(res.Competitors),
	}
	report.MainPrice, report.MainPriced = ParsePrice(res.MainHotel.Price)

	var total float64
	cheaper := 0
	for i := range res.Competitors {
		c := &res.Competitors[i]
		if c.Failed() {
			report.FailedTargets++
			continue
		}
		price, ok := ParsePrice(c.Price)
		if !ok {
			continue
		}
		report.PricedCompetitor++
		total += price
		if report.Cheapest == nil || price < report.MinPrice {
			report.MinPrice = price
			report.Cheapest = c
		}
		if price > report.MaxPrice {
			report.MaxPrice = price
		}
		if report.MainPriced && price < report.MainPrice {
			cheaper++
		}
	}
	if report.PricedCompetitor > 0 {
		report.AveragePrice = total / float64(report.PricedCompetitor)
	}
	if report.MainPriced {
		report.PriceRank = cheaper + 1
	}
	return report
}
