package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/carolinefzhang/selective-practice/workers/scraper/config"
	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
	"github.com/carolinefzhang/selective-practice/workers/scraper/repositories"
	"github.com/carolinefzhang/selective-practice/workers/scraper/services"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func main() {
	log.Println("Scraper worker starting...")
	if err := godotenv.Load(".env.local"); err == nil {
		log.Println("Loaded environment from .env.local")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("scraper failed: %v", err)
	}
	log.Println("Scraper worker finished.")
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	session, err := repositories.NewChromeSession(ctx, cfg.Headless, userAgent)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		session.Close()
		log.Println("Browser closed.")
	}()

	authenticator := services.NewAuthenticator(cfg)
	if err := authenticator.Login(ctx, session.Page()); err != nil {
		return err
	}

	navigator := services.NewNavigator(cfg, session)
	if result := navigator.DismissOptionalModal(ctx); result != domain.StepSucceeded {
		log.Printf("Onboarding modal: %s", result)
	}

	resultsPage, err := navigator.OpenResultsWindow(ctx)
	if err != nil {
		return err
	}

	if result := navigator.ApplyIncorrectFilter(ctx, resultsPage); result != domain.StepSucceeded {
		log.Printf("Result filter: %s; extraction proceeds against the unfiltered list.", result)
	}

	if err := navigator.OpenFirstFilteredItem(ctx, resultsPage); err != nil {
		return err
	}

	controller := services.NewHarvestController(cfg,
		services.WithNavigator(navigator),
		services.WithExtractor(services.NewExtractor(cfg)),
	)
	records, state := controller.Run(ctx, resultsPage)
	log.Printf("Extraction loop finished in state %s with %d record(s).", state, len(records))

	if len(records) == 0 {
		dump := filepath.Join(cfg.ScreenshotDir, "debug_page.html")
		if derr := resultsPage.DumpHTML(ctx, dump); derr != nil {
			log.Printf("failed to dump page HTML: %v", derr)
		} else {
			log.Printf("Page HTML saved to %s", dump)
		}
		shot := filepath.Join(cfg.ScreenshotDir, "debug_no_data.png")
		if serr := resultsPage.Screenshot(ctx, shot); serr != nil {
			log.Printf("failed to capture no-data screenshot: %v", serr)
		}
		return fmt.Errorf("no questions extracted; check selectors or page content")
	}

	rows := make([]domain.CSVRow, 0, len(records))
	for i, record := range records {
		row, err := record.ToCSVRow()
		if err != nil {
			return fmt.Errorf("failed to flatten question %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	writer := repositories.NewCSVWriter(cfg.OutputCSV)
	if err := writer.Write(rows); err != nil {
		return err
	}
	log.Printf("Data saved to %s (%d questions).", cfg.OutputCSV, len(rows))
	return nil
}
