package adapters

import (
	"context"
	"fmt"
	"strings"

	"games-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// pokiGameLinkSelector matches game page links on Poki listing pages
const pokiGameLinkSelector = `a[href*="/g/"]`

// PokiAdapter handles extraction for poki.com
type PokiAdapter struct {
	*BaseAdapter
	ListingURL string
	BaseURL    string
}

// NewPokiAdapter creates a new Poki adapter. Poki listings are served
// without script execution, so listing fetches stay on plain HTTP.
func NewPokiAdapter(config *types.Config, logger types.Logger) *PokiAdapter {
	return &PokiAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
		ListingURL:  "https://poki.com/en",
		BaseURL:     "https://poki.com",
	}
}

// Website returns the provenance tag for Poki records
func (p *PokiAdapter) Website() types.Website {
	return types.WebsitePoki
}

// GetGameURLs returns the game page URLs discovered on the Poki listing page
func (p *PokiAdapter) GetGameURLs(ctx context.Context) ([]string, error) {
	p.logger.Info("Starting game discovery for Poki")
	p.logger.Debugf("Fetching listing page: %s", p.ListingURL)

	html, err := p.GetListingContent(ctx, p.ListingURL, pokiGameLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing page: %w", err)
	}

	doc, err := p.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	links := p.ExtractGameLinks(doc, pokiGameLinkSelector, p.BaseURL)
	if len(links) == 0 {
		return nil, fmt.Errorf("no game links found on listing page")
	}

	p.logger.Infof("Found %d games on Poki listing", len(links))
	return p.CapURLs(links), nil
}

// ExtractGame extracts a raw game tuple from a parsed Poki game page.
// Returns nil when the page yields no usable name.
func (p *PokiAdapter) ExtractGame(doc *goquery.Document, pageURL string) *types.RawGame {
	name := p.ExtractText(doc, "h1")
	if name == "" {
		name = p.ExtractMetaContent(doc, "og:title")
	}
	if name == "" {
		name = p.ExtractText(doc, "title")
	}
	if name == "" {
		p.logger.Debugf("No game name found on %s", pageURL)
		return nil
	}

	description := p.ExtractMetaContent(doc, "og:description")
	imageURL := p.ExtractMetaContent(doc, "og:image")

	// The playable asset is the src of the game iframe; fall back to the
	// CDN URL derived from the /g/ slug.
	gameAPIURL := p.ExtractAttribute(doc, "iframe#game-element", "src")
	if gameAPIURL != "" {
		gameAPIURL = p.ResolveURL(p.BaseURL, gameAPIURL)
	} else if id := p.gameID(pageURL); id != "" {
		gameAPIURL = fmt.Sprintf("https://game-cdn.poki.com/%s/index.html", id)
	}

	return &types.RawGame{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		GameAPIURL:  gameAPIURL,
		URL:         pageURL,
	}
}

// gameID extracts the game slug from a Poki game page URL
func (p *PokiAdapter) gameID(pageURL string) string {
	if idx := strings.Index(pageURL, "/g/"); idx >= 0 {
		id := pageURL[idx+len("/g/"):]
		if cut := strings.IndexAny(id, "/?#"); cut >= 0 {
			id = id[:cut]
		}
		return id
	}
	return ""
}
