package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"games-extractor/extractor"
	"games-extractor/internal/types"
	"games-extractor/sink"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Parse command line flags
	var (
		outputFlag    = flag.String("output", "games_data.csv", "Output CSV file path")
		siteFlag      = flag.String("site", "", "Single site to extract (poki, gamedistribution, gamepix); default is all three")
		requestDelay  = flag.Duration("delay", 1*time.Second, "Delay between single requests")
		maxRetries    = flag.Int("retries", 3, "Maximum retry attempts for listing fetches")
		timeout       = flag.Duration("timeout", 30*time.Second, "Per-page fetch/render timeout")
		maxConcurrent = flag.Int("concurrent", 5, "Maximum concurrent game page requests")
		maxGames      = flag.Int("max-games", 0, "Maximum games per site (0 = no cap)")
		httpOnly      = flag.Bool("http-only", false, "Use HTTP requests only (disable headless browser)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Parse sites
	sites := []string{"poki", "gamedistribution", "gamepix"}
	if *siteFlag != "" {
		sites = []string{strings.ToLower(strings.TrimSpace(*siteFlag))}
	}

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Create configuration
	config := &types.Config{
		RequestDelay:          *requestDelay,
		MaxRetries:            *maxRetries,
		Timeout:               *timeout,
		MaxConcurrentRequests: *maxConcurrent,
		MaxGamesPerSite:       *maxGames,
		MaxScrollAttempts:     5,
		UseHeadlessBrowser:    !*httpOnly,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	startTime := time.Now()
	logger.Infof("Starting extraction for sites: %v", sites)

	var allRecords []types.GameRecord
	totalSkipped := 0
	failedSites := 0
	attemptedSites := 0

	for _, site := range sites {
		logger.Infof("Processing site: %s", site)

		var siteExtractor *extractor.SiteExtractor

		// Create the appropriate extractor based on site name
		switch site {
		case "poki":
			siteExtractor = extractor.NewPokiExtractor(config, logger)
		case "gamedistribution":
			siteExtractor = extractor.NewGameDistributionExtractor(config, logger)
		case "gamepix":
			siteExtractor = extractor.NewGamePixExtractor(config, logger)
		default:
			logger.Warnf("Unknown site: %s, skipping", site)
			continue
		}

		attemptedSites++
		defer siteExtractor.Close()

		// Extract from this site; a failed site never blocks the others
		records, skipped, err := siteExtractor.ExtractAll(ctx)
		if err != nil {
			logger.Warnf("Failed to extract from %s: %v", site, err)
			failedSites++
			continue
		}

		logger.Infof("%s: %d records extracted, %d listings skipped", siteExtractor.Website(), len(records), skipped)
		allRecords = append(allRecords, records...)
		totalSkipped += skipped
	}

	extractionTime := time.Since(startTime)
	logger.Infof("Extraction completed in %v", extractionTime)

	if attemptedSites == 0 {
		log.Fatal("No known sites selected")
	}
	if failedSites == attemptedSites {
		logger.Fatalf("All %d sites failed, no output written", failedSites)
	}

	// Write all records through the sink exactly once
	if err := sink.WriteCSV(allRecords, *outputFlag); err != nil {
		logger.Fatalf("Failed to write output file: %v", err)
	}
	logger.Infof("Results written to: %s", *outputFlag)

	// Print summary
	logger.Infof("Extraction completed successfully")
	logger.Infof("Total sites processed: %d", attemptedSites-failedSites)
	logger.Infof("Total games found: %d", len(allRecords))
	logger.Infof("Total listings skipped: %d", totalSkipped)
}
