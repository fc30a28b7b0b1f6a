package booking

import (
	"fmt"

	"hotel-price-scraper/config"
	"hotel-price-scraper/extract"
	"hotel-price-scraper/models"
)

func listingSchema(sel config.ListingSelectors, absolute func(string) string) extract.Schema[models.ListingRecord] {
	return extract.Schema[models.ListingRecord]{
		{Name: "name", Selector: sel.Name, Default: models.NotAvailable,
			Set: func(r *models.ListingRecord, v string) { r.Name = v }},
		{Name: "price", Selector: sel.Price, Default: models.NotAvailable,
			Set: func(r *models.ListingRecord, v string) { r.Price = v }},
		{Name: "rating", Selector: sel.Rating, Default: models.NotAvailable,
			Set: func(r *models.ListingRecord, v string) { r.Rating = v }},
		{Name: "url", Selector: sel.Link, Attr: "href", Post: absolute,
			Set: func(r *models.ListingRecord, v string) { r.URL = v }},
	}
}

func detailSchema(sel config.DetailSelectors) extract.Schema[models.DetailRecord] {
	return extract.Schema[models.DetailRecord]{
		{Name: "name", Selector: sel.Name, Default: models.NotAvailable,
			Set: func(r *models.DetailRecord, v string) { r.Name = v }},
		{Name: "price", Selector: sel.Price, Default: models.NotAvailable,
			Set: func(r *models.DetailRecord, v string) { r.Price = v }},
		{Name: "rating", Selector: sel.Rating, Default: models.NotAvailable,
			Set: func(r *models.DetailRecord, v string) { r.Rating = v }},
		{Name: "address", Selector: sel.Address, Default: models.NotAvailable,
			Set: func(r *models.DetailRecord, v string) { r.Address = v }},
	}
}

// ExtractListings reads at most limit hotel cards from a rendered search page.
// Card links are made absolute against pageURL.
func ExtractListings(html, pageURL string, sel config.ListingSelectors, limit int) ([]models.ListingRecord, error) {
	doc, err := extract.Parse(html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}
	schema := listingSchema(sel, extract.AbsoluteURL(doc.Url))
	return schema.ApplyAll(doc, sel.Card, limit), nil
}

// ExtractDetail reads one hotel page. pageURL is the resolved location of the
// page and is stored on the record as is.
func ExtractDetail(html, pageURL string, sel config.DetailSelectors) (models.DetailRecord, error) {
	doc, err := extract.Parse(html, pageURL)
	if err != nil {
		return models.DetailRecord{}, fmt.Errorf("failed to parse hotel page: %w", err)
	}
	rec := detailSchema(sel).Apply(doc.Selection)
	rec.URL = pageURL
	return rec, nil
}
