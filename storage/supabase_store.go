package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"hotel-price-scraper/utils"
)

// SupabaseStore writes price rows through a Supabase project's REST API.
// The tables must already exist in the project.
type SupabaseStore struct {
	client *postgrest.Client
	logger *utils.Logger
}

type hotelPriceJSON struct {
	HotelID     string   `json:"hotel_id"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	ScrapedAt   string   `json:"scraped_at"`
	IsMainHotel bool     `json:"is_main_hotel"`
}

type competitorPriceJSON struct {
	HotelID        string   `json:"hotel_id"`
	CompetitorName string   `json:"competitor_name"`
	CompetitorURL  string   `json:"competitor_url"`
	CheckIn        string   `json:"check_in"`
	CheckOut       string   `json:"check_out"`
	Price          *float64 `json:"price"`
	Rating         *float64 `json:"rating"`
	ScrapedAt      string   `json:"scraped_at"`
}

// NewSupabaseStore creates a store for the project at creds.URL, sending
// creds.Key as both the apikey and the bearer token.
func NewSupabaseStore(creds Credentials, logger *utils.Logger) (*SupabaseStore, error) {
	restURL, err := creds.RestURL()
	if err != nil {
		return nil, err
	}
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        creds.Key,
		"Authorization": "Bearer " + creds.Key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", client.ClientError)
	}
	logger.Info("Using Supabase REST store at %s", restURL)
	return &SupabaseStore{client: client, logger: logger}, nil
}

// InsertHotelPrice writes one hotel_prices row
func (s *SupabaseStore) InsertHotelPrice(ctx context.Context, row HotelPriceRow) error {
	return s.insert(ctx, "hotel_prices", hotelPriceJSON{
		HotelID:     row.HotelID,
		CheckIn:     row.CheckIn,
		CheckOut:    row.CheckOut,
		Price:       nullable(row.Price),
		Rating:      nullable(row.Rating),
		ScrapedAt:   row.ScrapedAt,
		IsMainHotel: row.IsMainHotel,
	})
}

// InsertCompetitorPrice writes one competitor_prices row
func (s *SupabaseStore) InsertCompetitorPrice(ctx context.Context, row CompetitorPriceRow) error {
	return s.insert(ctx, "competitor_prices", competitorPriceJSON{
		HotelID:        row.HotelID,
		CompetitorName: row.CompetitorName,
		CompetitorURL:  row.CompetitorURL,
		CheckIn:        row.CheckIn,
		CheckOut:       row.CheckOut,
		Price:          nullable(row.Price),
		Rating:         nullable(row.Rating),
		ScrapedAt:      row.ScrapedAt,
	})
}

func (s *SupabaseStore) insert(ctx context.Context, table string, row any) error {
	// postgrest-go requests take no context
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistenceWrite, table, err)
	}
	if _, _, err := s.client.From(table).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistenceWrite, table, err)
	}
	return nil
}

// Close is a no-op; the REST client holds no connection of its own.
func (s *SupabaseStore) Close() error { return nil }

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
