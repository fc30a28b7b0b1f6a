package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"

	"hotel-price-scraper/browser"
	"hotel-price-scraper/config"
	"hotel-price-scraper/scraper/booking"
	"hotel-price-scraper/services"
	"hotel-price-scraper/storage"
	"hotel-price-scraper/utils"
)

func main() {
	app := &cli.App{
		Name:  "hotel-price-scraper",
		Usage: "Scrape hotel listings and competitor prices from the booking site.",
		Commands: []*cli.Command{
			{
				Name:  "listing",
				Usage: "Extract the first hotel cards of one search results page.",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "search-url", Aliases: []string{"u"}, Usage: "Search results URL."},
					&cli.StringFlag{Name: "check-in", Usage: "Check-in date, passed through as is."},
					&cli.StringFlag{Name: "check-out", Usage: "Check-out date, passed through as is."},
				},
				Action: runListing,
			},
			{
				Name:  "detail",
				Usage: "Scrape a hotel page and its competitors, then store the prices.",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "hotel-id", Usage: "Identifier stored with every row."},
					&cli.StringFlag{Name: "hotel-url", Aliases: []string{"u"}, Usage: "Main hotel page URL."},
					&cli.StringSliceFlag{Name: "competitor-url", Aliases: []string{"c"}, Usage: "Competitor hotel page URL (repeatable)."},
					&cli.StringFlag{Name: "check-in", Usage: "Check-in date, passed through as is."},
					&cli.StringFlag{Name: "check-out", Usage: "Check-out date, passed through as is."},
					&cli.StringFlag{Name: "supabase-url", EnvVars: []string{"SUPABASE_URL"}, Usage: "Relational store URL."},
					&cli.StringFlag{Name: "supabase-key", EnvVars: []string{"SUPABASE_KEY"}, Usage: "Relational store key."},
				},
				Action: runDetail,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Value:   "INPUT.json",
		EnvVars: []string{"INPUT_PATH"},
		Usage:   "JSON or YAML run input; flags override its fields.",
	}
}

// env holds what both commands set up before scraping
type env struct {
	cfg       *config.Config
	logger    *utils.Logger
	selectors config.Selectors
	dataset   storage.Dataset
}

func bootstrap(ctx context.Context) (*env, error) {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	selectors, err := config.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}

	var dataset storage.Dataset
	if cfg.DatasetS3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		dataset = storage.NewS3Dataset(s3.NewFromConfig(awsCfg), cfg.DatasetS3Bucket, cfg.DatasetS3Prefix, logger)
	} else {
		dataset = storage.NewFileDataset(cfg.DatasetDir, logger)
	}

	return &env{cfg: cfg, logger: logger, selectors: selectors, dataset: dataset}, nil
}

func (e *env) pipeline() *services.Pipeline {
	p := services.NewPipeline(e.dataset, func(ctx context.Context, creds storage.Credentials) (storage.PriceStore, error) {
		return storage.OpenPriceStore(ctx, creds, e.logger)
	}, e.logger)
	if e.cfg.CSVFilePath != "" {
		p.CSV = storage.NewCSVWriter(e.cfg.CSVFilePath, e.logger)
	}
	p.Report = os.Stdout
	return p
}

func runListing(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ================== Bootstrap ====================
	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	var in config.ListingInput
	if err := config.LoadInput(c.String("input"), &in); err != nil {
		return err
	}
	override(c, "search-url", &in.SearchURL)
	override(c, "check-in", &in.CheckIn)
	override(c, "check-out", &in.CheckOut)
	if err := in.Validate(); err != nil {
		return err
	}

	e.logger.Info("Starting hotel price scraper...")
	e.logger.Info("Search URL: %s", in.SearchURL)
	e.logger.Info("Check-in: %s | Check-out: %s", in.CheckIn, in.CheckOut)

	// =============== Browser ===================================
	session, err := browser.Open(ctx, browser.Options{Headless: e.cfg.Headless, UserAgent: e.cfg.UserAgent}, e.logger)
	if err != nil {
		return err
	}
	defer session.Close()

	// =============== Scrape + persist ==========================
	scraper := booking.NewListingScraper(session, e.cfg, e.selectors, e.logger)
	if _, err := e.pipeline().RunListing(ctx, scraper, in); err != nil {
		return err
	}
	e.logger.Info("Scraping completed!")
	return nil
}

func runDetail(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ================== Bootstrap ====================
	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	var in config.DetailInput
	if err := config.LoadInput(c.String("input"), &in); err != nil {
		return err
	}
	override(c, "hotel-id", &in.HotelID)
	override(c, "hotel-url", &in.HotelURL)
	override(c, "check-in", &in.CheckIn)
	override(c, "check-out", &in.CheckOut)
	override(c, "supabase-url", &in.SupabaseURL)
	override(c, "supabase-key", &in.SupabaseKey)
	if c.IsSet("competitor-url") {
		in.CompetitorURLs = c.StringSlice("competitor-url")
	}
	if err := in.Validate(); err != nil {
		return err
	}

	target := storage.SelectTarget(in.SupabaseURL, in.SupabaseKey)

	e.logger.Info("Starting competitor price scraper...")
	e.logger.Info("Hotel: %s (%s)", in.HotelURL, in.HotelID)
	e.logger.Info("Competitors: %d | Check-in: %s | Check-out: %s", len(in.CompetitorURLs), in.CheckIn, in.CheckOut)

	// =============== Browser ===================================
	session, err := browser.Open(ctx, browser.Options{Headless: e.cfg.Headless, UserAgent: e.cfg.UserAgent}, e.logger)
	if err != nil {
		return err
	}
	defer session.Close()

	// =============== Scrape + persist ==========================
	scraper := booking.NewDetailScraper(session, e.cfg, e.selectors, e.logger)
	if _, err := e.pipeline().RunDetail(ctx, scraper, in, target); err != nil {
		return err
	}
	e.logger.Info("Scraping completed!")
	return nil
}

// override replaces *dst with the flag's value when the flag was given,
// either on the command line or through its env var.
func override(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}
