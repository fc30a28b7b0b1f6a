package services

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"hotel-price-scraper/models"
)

var (
	priceRegex  = regexp.MustCompile(`\d[\d.,]*`)
	ratingRegex = regexp.MustCompile(`\d{1,2}(?:[.,]\d{1,2})?`)
)

// ParsePrice extracts the first amount from a displayed price like "US$1,079.50",
// "€ 1.079,50" or "€ 150". The last "." or "," followed by one or two digits
// is the decimal mark; any other separator groups thousands. The sentinel and
// strings without digits return false.
func ParsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == models.NotAvailable {
		return 0, false
	}
	// Booking renders thousands with narrow no-break spaces in some locales
	cleaned := strings.NewReplacer("\u202f", "", "\u00a0", "", " ", "").Replace(raw)

	match := strings.TrimRight(priceRegex.FindString(cleaned), ".,")
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(normalizeAmount(match), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// normalizeAmount rewrites "1.079,50" or "1,079.50" as "1079.50".
func normalizeAmount(s string) string {
	stripGroups := strings.NewReplacer(".", "", ",", "")
	i := strings.LastIndexAny(s, ".,")
	if i < 0 {
		return s
	}
	frac := s[i+1:]
	if len(frac) == 0 || len(frac) > 2 {
		return stripGroups.Replace(s)
	}
	return stripGroups.Replace(s[:i]) + "." + frac
}

// ParseRating extracts a 0-10 review score from strings like "Scored 8.7" or
// "8,7". Out of range values return false.
func ParseRating(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == models.NotAvailable {
		return 0, false
	}
	match := ratingRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	// Sanity: booking scores run from 0 to 10
	if val < 0 || val > 10 {
		return 0, false
	}
	return val, true
}

// nullPrice and nullRating map unparsable values to SQL NULL
func nullPrice(raw string) sql.NullFloat64 {
	v, ok := ParsePrice(raw)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func nullRating(raw string) sql.NullFloat64 {
	v, ok := ParseRating(raw)
	return sql.NullFloat64{Float64: v, Valid: ok}
}
