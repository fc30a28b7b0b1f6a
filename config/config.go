package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Browser
	Headless  bool
	UserAgent string

	// Scraper
	NavTimeout         time.Duration // page load of the search page
	ListingWaitTimeout time.Duration // wait for listing cards once loaded
	DetailNavTimeout   time.Duration // full navigation of a hotel page
	MaxListings        int
	RateLimitDelay     int // milliseconds between detail page visits
	SelectorsFile      string

	// Output
	DatasetDir      string
	DatasetS3Bucket string
	DatasetS3Prefix string
	CSVFilePath     string // empty disables the CSV export

	LogLevel string
}

// Load reads configuration from environment variables or falls back to defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Headless:           getEnvBool("HEADLESS", true),
		UserAgent:          getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		NavTimeout:         getEnvDuration("NAV_TIMEOUT", 60*time.Second),
		ListingWaitTimeout: getEnvDuration("LISTING_WAIT_TIMEOUT", 30*time.Second),
		DetailNavTimeout:   getEnvDuration("DETAIL_NAV_TIMEOUT", 60*time.Second),
		MaxListings:        getEnvInt("MAX_LISTINGS", 10),
		RateLimitDelay:     getEnvInt("RATE_LIMIT_DELAY_MS", 0),
		SelectorsFile:      getEnv("SELECTORS_FILE", ""),
		DatasetDir:         getEnv("DATASET_DIR", "storage/datasets/default"),
		DatasetS3Bucket:    getEnv("DATASET_S3_BUCKET", ""),
		DatasetS3Prefix:    getEnv("DATASET_S3_PREFIX", "datasets/default"),
		CSVFilePath:        getEnv("CSV_FILE_PATH", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("45s") or plain milliseconds ("45000").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}
