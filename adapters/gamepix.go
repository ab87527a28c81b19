package adapters

import (
	"context"
	"fmt"

	"games-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// gamePixGameLinkSelector matches game page links on GamePix listing pages
const gamePixGameLinkSelector = `a[href*="/play/"]`

// GamePixAdapter handles extraction for gamepix.com
type GamePixAdapter struct {
	*BaseAdapter
	ListingURL string
	BaseURL    string
}

// NewGamePixAdapter creates a new GamePix adapter
func NewGamePixAdapter(config *types.Config, logger types.Logger) *GamePixAdapter {
	base := NewBaseAdapter(config, logger)
	base.renderListings = true // Listing is rendered client-side
	return &GamePixAdapter{
		BaseAdapter: base,
		ListingURL:  "https://www.gamepix.com/",
		BaseURL:     "https://www.gamepix.com",
	}
}

// Website returns the provenance tag for GamePix records
func (g *GamePixAdapter) Website() types.Website {
	return types.WebsiteGamePix
}

// GetGameURLs returns the game page URLs discovered on the rendered listing
func (g *GamePixAdapter) GetGameURLs(ctx context.Context) ([]string, error) {
	g.logger.Info("Starting game discovery for GamePix")
	g.logger.Debugf("Fetching listing page: %s", g.ListingURL)

	html, err := g.GetListingContent(ctx, g.ListingURL, gamePixGameLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing page: %w", err)
	}

	doc, err := g.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	links := g.ExtractGameLinks(doc, gamePixGameLinkSelector, g.BaseURL)
	if len(links) == 0 {
		return nil, fmt.Errorf("no game links found on listing page")
	}

	g.logger.Infof("Found %d games on GamePix listing", len(links))
	return g.CapURLs(links), nil
}

// ExtractGame extracts a raw game tuple from a parsed GamePix game page.
// Returns nil when the page yields no usable name.
func (g *GamePixAdapter) ExtractGame(doc *goquery.Document, pageURL string) *types.RawGame {
	name := g.ExtractText(doc, "h1")
	if name == "" {
		name = g.ExtractMetaContent(doc, "og:title")
	}
	if name == "" {
		g.logger.Debugf("No game name found on %s", pageURL)
		return nil
	}

	description := g.ExtractMetaContent(doc, "description")
	if description == "" {
		description = g.ExtractMetaContent(doc, "og:description")
	}

	imageURL := g.ExtractMetaContent(doc, "og:image")
	if imageURL != "" {
		imageURL = g.ResolveURL(g.BaseURL, imageURL)
	}

	gameAPIURL := g.ExtractAttribute(doc, `iframe[src*="/embed/"]`, "src")
	if gameAPIURL != "" {
		gameAPIURL = g.ResolveURL(g.BaseURL, gameAPIURL)
	}

	return &types.RawGame{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		GameAPIURL:  gameAPIURL,
		URL:         pageURL,
	}
}
