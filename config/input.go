package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingURL is returned by Validate when no target URL was given.
var ErrMissingURL = errors.New("missing target url")

// ListingInput is the run input of listing mode.
type ListingInput struct {
	SearchURL string `yaml:"searchUrl" json:"searchUrl"`
	CheckIn   string `yaml:"checkIn" json:"checkIn"`
	CheckOut  string `yaml:"checkOut" json:"checkOut"`
}

// Validate checks the fields listing mode cannot run without.
func (in ListingInput) Validate() error {
	if strings.TrimSpace(in.SearchURL) == "" {
		return fmt.Errorf("searchUrl: %w", ErrMissingURL)
	}
	return nil
}

// DetailInput is the run input of detail mode.
type DetailInput struct {
	HotelID        string   `yaml:"hotelId" json:"hotelId"`
	HotelURL       string   `yaml:"hotelUrl" json:"hotelUrl"`
	CompetitorURLs []string `yaml:"competitorUrls" json:"competitorUrls"`
	CheckIn        string   `yaml:"checkIn" json:"checkIn"`
	CheckOut       string   `yaml:"checkOut" json:"checkOut"`
	SupabaseURL    string   `yaml:"supabaseUrl" json:"supabaseUrl"`
	SupabaseKey    string   `yaml:"supabaseKey" json:"supabaseKey"`
}

// Validate checks the fields detail mode cannot run without.
func (in DetailInput) Validate() error {
	if strings.TrimSpace(in.HotelURL) == "" {
		return fmt.Errorf("hotelUrl: %w", ErrMissingURL)
	}
	for i, u := range in.CompetitorURLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("competitorUrls[%d]: %w", i, ErrMissingURL)
		}
	}
	return nil
}

// LoadInput decodes a JSON (.json) or YAML input file into v. A missing file leaves v
// untouched so flags alone can describe the run.
func LoadInput(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".json") {
		unmarshal = json.Unmarshal
	}
	if err := unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return nil
}
