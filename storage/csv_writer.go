package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"hotel-price-scraper/models"
	"hotel-price-scraper/utils"
)

// CSVWriter exports a run's records to a flat CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteListing writes one row per hotel card
func (w *CSVWriter) WriteListing(res *models.ListingResult) error {
	header := []string{"search_url", "check_in", "check_out", "scraped_at", "name", "price", "rating", "url"}
	rows := make([][]string, 0, len(res.Hotels))
	for _, h := range res.Hotels {
		rows = append(rows, []string{res.SearchURL, res.CheckIn, res.CheckOut, res.ScrapedAt, h.Name, h.Price, h.Rating, h.URL})
	}
	return w.write(header, rows)
}

// WriteDetail writes the main hotel first, then one row per competitor
func (w *CSVWriter) WriteDetail(res *models.DetailResult) error {
	header := []string{"hotel_id", "check_in", "check_out", "scraped_at", "role", "name", "price", "rating", "address", "url", "error"}
	row := func(role string, r models.DetailRecord) []string {
		return []string{res.HotelID, res.CheckIn, res.CheckOut, res.ScrapedAt, role, r.Name, r.Price, r.Rating, r.Address, r.URL, r.Error}
	}
	rows := [][]string{row("main", res.MainHotel)}
	for _, c := range res.Competitors {
		rows = append(rows, row("competitor", c))
	}
	return w.write(header, rows)
}

func (w *CSVWriter) write(header []string, rows [][]string) error {
	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	w.logger.Info("Records exported to: %s (%d rows)", w.filePath, len(rows))
	return nil
}
