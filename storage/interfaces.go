package storage

import (
	"context"
	"database/sql"
	"errors"
)

// ErrPersistenceWrite marks a row the relational store rejected.
var ErrPersistenceWrite = errors.New("persistence write failure")

// Dataset is the append-only job dataset every run writes its result to
type Dataset interface {
	Push(ctx context.Context, item any) error
}

// HotelPriceRow is one row of hotel_prices
type HotelPriceRow struct {
	HotelID     string
	CheckIn     string
	CheckOut    string
	Price       sql.NullFloat64
	Rating      sql.NullFloat64
	ScrapedAt   string
	IsMainHotel bool
}

// CompetitorPriceRow is one row of competitor_prices
type CompetitorPriceRow struct {
	HotelID        string
	CompetitorName string
	CompetitorURL  string
	CheckIn        string
	CheckOut       string
	Price          sql.NullFloat64
	Rating         sql.NullFloat64
	ScrapedAt      string
}

// PriceStore is the relational store holding price history
type PriceStore interface {
	InsertHotelPrice(ctx context.Context, row HotelPriceRow) error
	InsertCompetitorPrice(ctx context.Context, row CompetitorPriceRow) error
	Close() error
}
