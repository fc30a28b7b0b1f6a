package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hotel-price-scraper/utils"
)

func mockWriter(t *testing.T) (*PostgresWriter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return newPostgresWriter(db, utils.Discard()), mock
}

func TestPostgresWriterInsertHotelPrice(t *testing.T) {
	w, mock := mockWriter(t)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO hotel_prices (hotel_id, check_in, check_out, price, rating, scraped_at, is_main_hotel)")).
		WithArgs("H1", "2024-05-01", "2024-05-03", 150.0, nil, "2024-04-20T08:30:00.000Z", true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectClose()

	err := w.InsertHotelPrice(context.Background(), HotelPriceRow{
		HotelID:     "H1",
		CheckIn:     "2024-05-01",
		CheckOut:    "2024-05-03",
		Price:       sql.NullFloat64{Float64: 150, Valid: true},
		ScrapedAt:   "2024-04-20T08:30:00.000Z",
		IsMainHotel: true,
	})
	if err != nil {
		t.Fatalf("InsertHotelPrice: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresWriterInsertCompetitorPrice(t *testing.T) {
	w, mock := mockWriter(t)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO competitor_prices (hotel_id, competitor_name, competitor_url, check_in, check_out, price, rating, scraped_at)")).
		WithArgs("H1", "Hotel C", "https://x/hotel/C", "2024-05-01", "2024-05-03", 99.0, 7.9, "2024-04-20T08:30:00.000Z").
		WillReturnResult(sqlmock.NewResult(2, 1))

	err := w.InsertCompetitorPrice(context.Background(), CompetitorPriceRow{
		HotelID:        "H1",
		CompetitorName: "Hotel C",
		CompetitorURL:  "https://x/hotel/C",
		CheckIn:        "2024-05-01",
		CheckOut:       "2024-05-03",
		Price:          sql.NullFloat64{Float64: 99, Valid: true},
		Rating:         sql.NullFloat64{Float64: 7.9, Valid: true},
		ScrapedAt:      "2024-04-20T08:30:00.000Z",
	})
	if err != nil {
		t.Fatalf("InsertCompetitorPrice: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresWriterRejectedRow(t *testing.T) {
	w, mock := mockWriter(t)
	mock.ExpectExec("INSERT INTO competitor_prices").WillReturnError(errors.New("value too long for type"))

	err := w.InsertCompetitorPrice(context.Background(), CompetitorPriceRow{HotelID: "H1"})
	if !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("err = %v; want ErrPersistenceWrite", err)
	}
}

func TestPostgresWriterCreateTables(t *testing.T) {
	w, mock := mockWriter(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS hotel_prices.*CREATE TABLE IF NOT EXISTS competitor_prices").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := w.CreateTables(context.Background()); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// restRequest is one request seen by the fake Supabase REST endpoint.
type restRequest struct {
	method string
	path   string
	apikey string
	auth   string
	prefer string
	body   map[string]any
}

// fakeSupabase returns the server and a snapshot of the requests it saw.
func fakeSupabase(t *testing.T, status int, reply string) (*httptest.Server, func() []restRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []restRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		req := restRequest{
			method: r.Method,
			path:   r.URL.Path,
			apikey: r.Header.Get("apikey"),
			auth:   r.Header.Get("Authorization"),
			prefer: r.Header.Get("Prefer"),
		}
		if err := json.Unmarshal(raw, &req.body); err != nil {
			t.Errorf("row body is not a JSON object: %s", raw)
		}
		mu.Lock()
		seen = append(seen, req)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []restRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]restRequest(nil), seen...)
	}
}

func TestSupabaseStoreInsertsRows(t *testing.T) {
	srv, seen := fakeSupabase(t, http.StatusCreated, "")

	store, err := OpenPriceStore(context.Background(), Credentials{URL: srv.URL, Key: "anon-key"}, utils.Discard())
	if err != nil {
		t.Fatalf("OpenPriceStore: %v", err)
	}
	if _, ok := store.(*SupabaseStore); !ok {
		t.Fatalf("store = %T; want *SupabaseStore for an http url", store)
	}
	defer store.Close()

	err = store.InsertHotelPrice(context.Background(), HotelPriceRow{
		HotelID:     "H1",
		CheckIn:     "2024-05-01",
		CheckOut:    "2024-05-03",
		Price:       sql.NullFloat64{Float64: 150, Valid: true},
		ScrapedAt:   "2024-04-20T08:30:00.000Z",
		IsMainHotel: true,
	})
	if err != nil {
		t.Fatalf("InsertHotelPrice: %v", err)
	}
	err = store.InsertCompetitorPrice(context.Background(), CompetitorPriceRow{
		HotelID:        "H1",
		CompetitorName: "Error",
		CompetitorURL:  "https://x/hotel/B",
		ScrapedAt:      "2024-04-20T08:30:00.000Z",
	})
	if err != nil {
		t.Fatalf("InsertCompetitorPrice: %v", err)
	}

	reqs := seen()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests; want 2", len(reqs))
	}
	hotel, comp := reqs[0], reqs[1]
	if hotel.method != http.MethodPost || hotel.path != "/rest/v1/hotel_prices" {
		t.Errorf("hotel request = %s %s", hotel.method, hotel.path)
	}
	if hotel.apikey != "anon-key" || hotel.auth != "Bearer anon-key" {
		t.Errorf("auth headers = %q / %q", hotel.apikey, hotel.auth)
	}
	if hotel.prefer != "return=minimal" {
		t.Errorf("Prefer = %q", hotel.prefer)
	}
	if hotel.body["hotel_id"] != "H1" || hotel.body["price"] != 150.0 || hotel.body["rating"] != nil || hotel.body["is_main_hotel"] != true {
		t.Errorf("hotel row = %v", hotel.body)
	}
	if comp.path != "/rest/v1/competitor_prices" {
		t.Errorf("competitor path = %s", comp.path)
	}
	if comp.body["competitor_url"] != "https://x/hotel/B" || comp.body["competitor_name"] != "Error" || comp.body["price"] != nil {
		t.Errorf("competitor row = %v", comp.body)
	}
}

func TestSupabaseStoreRejectedRow(t *testing.T) {
	srv, _ := fakeSupabase(t, http.StatusUnauthorized, `{"code":"42501","message":"permission denied for table hotel_prices"}`)

	store, err := NewSupabaseStore(Credentials{URL: srv.URL, Key: "bad-key"}, utils.Discard())
	if err != nil {
		t.Fatalf("NewSupabaseStore: %v", err)
	}
	err = store.InsertHotelPrice(context.Background(), HotelPriceRow{HotelID: "H1"})
	if !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("err = %v; want ErrPersistenceWrite", err)
	}
}
