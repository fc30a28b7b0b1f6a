package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotel-price-scraper/utils"

	_ "github.com/lib/pq"
)

const insertHotelPriceSQL = `
	INSERT INTO hotel_prices (hotel_id, check_in, check_out, price, rating, scraped_at, is_main_hotel)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const insertCompetitorPriceSQL = `
	INSERT INTO competitor_prices (hotel_id, competitor_name, competitor_url, check_in, check_out, price, rating, scraped_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// PostgresWriter stores price rows in PostgreSQL over a direct connection
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens the store described by creds and pings it
func NewPostgresWriter(ctx context.Context, creds Credentials, logger *utils.Logger) (*PostgresWriter, error) {
	dsn, err := creds.DSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	// one writer, one row at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return newPostgresWriter(db, logger), nil
}

func newPostgresWriter(db *sql.DB, logger *utils.Logger) *PostgresWriter {
	return &PostgresWriter{db: db, logger: logger}
}

// OpenPriceStore connects to the store creds point at: a Supabase project
// URL goes through the REST API, a postgres:// URL through lib/pq with its
// tables created if missing.
func OpenPriceStore(ctx context.Context, creds Credentials, logger *utils.Logger) (PriceStore, error) {
	if creds.REST() {
		return NewSupabaseStore(creds, logger)
	}
	w, err := NewPostgresWriter(ctx, creds, logger)
	if err != nil {
		return nil, err
	}
	if err := w.CreateTables(ctx); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// CreateTables creates hotel_prices and competitor_prices if they don't exist
func (w *PostgresWriter) CreateTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS hotel_prices (
		id            SERIAL PRIMARY KEY,
		hotel_id      TEXT,
		check_in      TEXT,
		check_out     TEXT,
		price         NUMERIC(10,2),
		rating        NUMERIC(4,2),
		scraped_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_main_hotel BOOLEAN     NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS competitor_prices (
		id              SERIAL PRIMARY KEY,
		hotel_id        TEXT,
		competitor_name TEXT,
		competitor_url  TEXT,
		check_in        TEXT,
		check_out       TEXT,
		price           NUMERIC(10,2),
		rating          NUMERIC(4,2),
		scraped_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_hotel_prices_hotel      ON hotel_prices (hotel_id, scraped_at);
	CREATE INDEX IF NOT EXISTS idx_competitor_prices_hotel ON competitor_prices (hotel_id, scraped_at);
	`
	if _, err := w.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	w.logger.Info("Tables 'hotel_prices' and 'competitor_prices' are ready")
	return nil
}

// InsertHotelPrice writes one hotel_prices row
func (w *PostgresWriter) InsertHotelPrice(ctx context.Context, row HotelPriceRow) error {
	_, err := w.db.ExecContext(ctx, insertHotelPriceSQL,
		row.HotelID,
		row.CheckIn,
		row.CheckOut,
		row.Price,
		row.Rating,
		row.ScrapedAt,
		row.IsMainHotel,
	)
	if err != nil {
		return fmt.Errorf("%w: hotel_prices: %v", ErrPersistenceWrite, err)
	}
	return nil
}

// InsertCompetitorPrice writes one competitor_prices row
func (w *PostgresWriter) InsertCompetitorPrice(ctx context.Context, row CompetitorPriceRow) error {
	_, err := w.db.ExecContext(ctx, insertCompetitorPriceSQL,
		row.HotelID,
		row.CompetitorName,
		row.CompetitorURL,
		row.CheckIn,
		row.CheckOut,
		row.Price,
		row.Rating,
		row.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: competitor_prices: %v", ErrPersistenceWrite, err)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
