package extractor

import (
	"context"
	"fmt"
	"time"

	"games-extractor/adapters"
	"games-extractor/internal/types"
	"games-extractor/utils"

	"github.com/PuerkitoBio/goquery"
)

// siteAdapter is the contract a site adapter must satisfy to be driven by a
// SiteExtractor. All three adapters in the adapters package implement it.
type siteAdapter interface {
	Website() types.Website
	GetGameURLs(ctx context.Context) ([]string, error)
	ExtractGame(doc *goquery.Document, pageURL string) *types.RawGame
	FetchGamePages(ctx context.Context, urls []string) []utils.FetchResult
	ParseHTML(html string) (*goquery.Document, error)
	Close()
}

// SiteExtractor runs the full discover-fetch-extract-normalize pass for one
// site. Adapters are mutually independent; a failed extractor never aborts
// the others.
type SiteExtractor struct {
	adapter siteAdapter
	logger  types.Logger
}

// NewPokiExtractor creates an extractor for poki.com
func NewPokiExtractor(config *types.Config, logger types.Logger) *SiteExtractor {
	return &SiteExtractor{
		adapter: adapters.NewPokiAdapter(config, logger),
		logger:  logger,
	}
}

// NewGameDistributionExtractor creates an extractor for gamedistribution.com
func NewGameDistributionExtractor(config *types.Config, logger types.Logger) *SiteExtractor {
	return &SiteExtractor{
		adapter: adapters.NewGameDistributionAdapter(config, logger),
		logger:  logger,
	}
}

// NewGamePixExtractor creates an extractor for gamepix.com
func NewGamePixExtractor(config *types.Config, logger types.Logger) *SiteExtractor {
	return &SiteExtractor{
		adapter: adapters.NewGamePixAdapter(config, logger),
		logger:  logger,
	}
}

// Website returns the site this extractor targets
func (e *SiteExtractor) Website() types.Website {
	return e.adapter.Website()
}

// ExtractAll extracts all game records from the site. The second return
// value counts listings that were skipped because their page could not be
// fetched or yielded no usable data.
func (e *SiteExtractor) ExtractAll(ctx context.Context) ([]types.GameRecord, int, error) {
	startTime := time.Now()
	website := e.adapter.Website()
	e.logger.Infof("Starting %s extraction at %v", website, startTime.Format("15:04:05.000"))

	e.logger.Info("Step 1: Discovering game URLs...")
	gameURLs, err := e.adapter.GetGameURLs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get game URLs: %w", err)
	}

	e.logger.Infof("Found %d game URLs", len(gameURLs))

	e.logger.Info("Step 2: Extracting game metadata...")
	results := e.adapter.FetchGamePages(ctx, gameURLs)

	var records []types.GameRecord
	skipped := 0

	for _, result := range results {
		if result.Err != nil {
			e.logger.Warnf("Failed to fetch game page %s: %v", result.URL, result.Err)
			skipped++
			continue
		}

		doc, err := e.adapter.ParseHTML(string(result.Body))
		if err != nil {
			e.logger.Warnf("Failed to parse game page %s: %v", result.URL, err)
			skipped++
			continue
		}

		raw := e.adapter.ExtractGame(doc, result.URL)
		if raw == nil {
			e.logger.Warnf("No game data found on %s, skipping", result.URL)
			skipped++
			continue
		}

		records = append(records, Normalize(raw, website, time.Now()))
	}

	totalTime := time.Since(startTime)
	e.logger.Infof("%s extraction completed in %v", website, totalTime)
	e.logger.Infof("Successfully processed %d/%d games (%d skipped)", len(records), len(gameURLs), skipped)

	return records, skipped, nil
}

// Close cleans up resources
func (e *SiteExtractor) Close() {
	if e.adapter != nil {
		e.adapter.Close()
	}
}
