package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ListingSelectors locate the hotel cards of a search results page.
type ListingSelectors struct {
	Card   string `yaml:"card"`
	Name   string `yaml:"name"`
	Price  string `yaml:"price"`
	Rating string `yaml:"rating"`
	Link   string `yaml:"link"`
}

// DetailSelectors locate the fields of a single hotel page.
type DetailSelectors struct {
	Ready   string `yaml:"ready"`
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Rating  string `yaml:"rating"`
	Address string `yaml:"address"`
}

// Selectors is every CSS selector the scrapers use.
type Selectors struct {
	Listing ListingSelectors `yaml:"listing"`
	Detail  DetailSelectors  `yaml:"detail"`
}

// DefaultSelectors returns the selectors for the booking site's current markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Listing: ListingSelectors{
			Card:   `[data-testid="property-card"]`,
			Name:   `[data-testid="title"]`,
			Price:  `[data-testid="price-and-discounted-price"]`,
			Rating: `[data-testid="review-score"]`,
			Link:   `a`,
		},
		Detail: DetailSelectors{
			Ready:   `#hp_hotel_name, [data-testid="property-name"]`,
			Name:    `#hp_hotel_name h2, [data-testid="property-name"]`,
			Price:   `.prco-valign-middle-helper, [data-testid="price-and-discounted-price"]`,
			Rating:  `[data-testid="review-score-component"] div:first-child, [data-testid="review-score"]`,
			Address: `.hp_address_subtitle, [data-testid="PropertyHeaderAddressDesktop-wrapper"]`,
		},
	}
}

// LoadSelectors returns DefaultSelectors overridden by the keys present in
// the YAML file at path. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors file: %w", err)
	}
	// yaml leaves fields absent from the document untouched
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("failed to parse selectors file %s: %w", path, err)
	}
	return sel, nil
}
