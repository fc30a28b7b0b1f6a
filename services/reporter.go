package services

import (
	"fmt"
	"io"
	"strings"

	"hotel-price-scraper/models"
)

// PrintListingReport formats the listing summary for the terminal
func PrintListingReport(w io.Writer, res *models.ListingResult, report *models.ListingReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("HOTEL SEARCH SNAPSHOT", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Stay                : %s → %s\n", orDash(res.CheckIn), orDash(res.CheckOut))
	fmt.Fprintf(w, "  Hotels Scraped      : %d\n", report.TotalHotels)
	fmt.Fprintf(w, "  Hotels With Price   : %d\n", report.PricedHotels)
	if report.PricedHotels > 0 {
		fmt.Fprintf(w, "  Average Price       : %.2f\n", report.AveragePrice)
		fmt.Fprintf(w, "  Minimum Price       : %.2f\n", report.MinPrice)
		fmt.Fprintf(w, "  Maximum Price       : %.2f\n", report.MaxPrice)
	}

	if report.Cheapest != nil {
		fmt.Fprintf(w, "\n CHEAPEST HOTEL\n%s\n", thin)
		fmt.Fprintf(w, "  Name   : %s\n", report.Cheapest.Name)
		fmt.Fprintf(w, "  Price  : %s\n", report.Cheapest.Price)
		fmt.Fprintf(w, "  URL    : %s\n", orDash(report.Cheapest.URL))
	}

	if len(report.TopRated) > 0 {
		fmt.Fprintf(w, "\n TOP %d HIGHEST RATED\n%s\n", len(report.TopRated), thin)
		for i, h := range report.TopRated {
			fmt.Fprintf(w, "  %d. %-35s %s\n", i+1, truncate(h.Name, 35), h.Rating)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

// PrintComparisonReport formats the main hotel against its competitors
func PrintComparisonReport(w io.Writer, res *models.DetailResult, report *models.ComparisonReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("COMPETITOR PRICE COMPARISON", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n MAIN HOTEL\n%s\n", thin)
	fmt.Fprintf(w, "  Name     : %s\n", res.MainHotel.Name)
	fmt.Fprintf(w, "  Price    : %s\n", res.MainHotel.Price)
	fmt.Fprintf(w, "  Rating   : %s\n", res.MainHotel.Rating)
	fmt.Fprintf(w, "  Address  : %s\n", res.MainHotel.Address)

	fmt.Fprintf(w, "\n COMPETITORS\n%s\n", thin)
	fmt.Fprintf(w, "  Visited        : %d\n", report.Competitors)
	fmt.Fprintf(w, "  Failed         : %d\n", report.FailedTargets)
	fmt.Fprintf(w, "  With Price     : %d\n", report.PricedCompetitor)
	if report.PricedCompetitor > 0 {
		fmt.Fprintf(w, "  Average Price  : %.2f\n", report.AveragePrice)
		fmt.Fprintf(w, "  Minimum Price  : %.2f (%s)\n", report.MinPrice, report.Cheapest.Name)
		fmt.Fprintf(w, "  Maximum Price  : %.2f\n", report.MaxPrice)
	}
	if report.PriceRank > 0 {
		fmt.Fprintf(w, "  Main Hotel Rank: %d of %d by price\n", report.PriceRank, report.PricedCompetitor+1)
	}

	for i, c := range res.Competitors {
		status := c.Price
		if c.Failed() {
			status = "failed: " + truncate(c.Error, 30)
		}
		fmt.Fprintf(w, "  %d. %-35s %s\n", i+1, truncate(c.Name, 35), status)
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
