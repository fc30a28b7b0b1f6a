package models

import "time"

// NotAvailable is substituted for any field whose selector matched nothing
const NotAvailable = "N/A"

// ErrorName marks a DetailRecord produced from a failed page visit
const ErrorName = "Error"

// TimestampLayout matches the ISO-8601 form used for scrapedAt
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ListingRecord is one hotel card from a search results page
type ListingRecord struct {
	Name   string `json:"name"`
	Price  string `json:"price"`
	Rating string `json:"rating"`
	URL    string `json:"url"`
}

// DetailRecord is the data read from a single hotel page
type DetailRecord struct {
	Name    string `json:"name"`
	Price   string `json:"price"`
	Rating  string `json:"rating"`
	Address string `json:"address"`
	URL     string `json:"url"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the record stands in for a page that could not be loaded
func (r DetailRecord) Failed() bool {
	return r.Error != ""
}

// FailedDetail builds the placeholder record for a target that could not be loaded
func FailedDetail(url string, err error) DetailRecord {
	return DetailRecord{
		Name:    ErrorName,
		Price:   NotAvailable,
		Rating:  NotAvailable,
		Address: NotAvailable,
		URL:     url,
		Error:   err.Error(),
	}
}

// ListingResult is the dataset item written by listing mode
type ListingResult struct {
	SearchURL string          `json:"searchUrl"`
	CheckIn   string          `json:"checkIn"`
	CheckOut  string          `json:"checkOut"`
	ScrapedAt string          `json:"scrapedAt"`
	Hotels    []ListingRecord `json:"hotels"`
}

// DetailResult is the dataset item written by detail mode
type DetailResult struct {
	HotelID     string         `json:"hotelId"`
	CheckIn     string         `json:"checkIn"`
	CheckOut    string         `json:"checkOut"`
	ScrapedAt   string         `json:"scrapedAt"`
	MainHotel   DetailRecord   `json:"mainHotel"`
	Competitors []DetailRecord `json:"competitors"`
}

// ListingReport holds figures computed from a listing-mode result
type ListingReport struct {
	TotalHotels  int
	PricedHotels int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	Cheapest     *ListingRecord
	TopRated     []ListingRecord
}

// ComparisonReport holds the main hotel's price against its competitors
type ComparisonReport struct {
	MainName         string
	MainPrice        float64
	MainPriced       bool
	Competitors      int
	FailedTargets    int
	PricedCompetitor int
	AveragePrice     float64
	MinPrice         float64
	MaxPrice         float64
	Cheapest         *DetailRecord
	// PriceRank is 1 when the main hotel is the cheapest priced entry. Zero when unpriced.
	PriceRank int
}
