package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"games-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// gameIDPattern matches the 32-hex game identifier in GameDistribution URLs
var gameIDPattern = regexp.MustCompile(`/games/([a-f0-9]{32})`)

// gdGameLinkSelector matches game page links on GameDistribution listing pages
const gdGameLinkSelector = `a[href*="/games/"]`

// GameDistributionAdapter handles extraction for gamedistribution.com
type GameDistributionAdapter struct {
	*BaseAdapter
	ListingURL string
	BaseURL    string
}

// NewGameDistributionAdapter creates a new GameDistribution adapter
func NewGameDistributionAdapter(config *types.Config, logger types.Logger) *GameDistributionAdapter {
	base := NewBaseAdapter(config, logger)
	base.renderListings = true // Listing is rendered client-side
	return &GameDistributionAdapter{
		BaseAdapter: base,
		ListingURL:  "https://gamedistribution.com/games/",
		BaseURL:     "https://gamedistribution.com",
	}
}

// Website returns the provenance tag for GameDistribution records
func (g *GameDistributionAdapter) Website() types.Website {
	return types.WebsiteGameDistribution
}

// GetGameURLs returns the game page URLs discovered on the rendered listing
func (g *GameDistributionAdapter) GetGameURLs(ctx context.Context) ([]string, error) {
	g.logger.Info("Starting game discovery for GameDistribution")
	g.logger.Debugf("Fetching listing page: %s", g.ListingURL)

	html, err := g.GetListingContent(ctx, g.ListingURL, gdGameLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing page: %w", err)
	}

	doc, err := g.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	links := g.ExtractGameLinks(doc, gdGameLinkSelector, g.BaseURL)

	// Keep only actual game detail pages; category and tag links also
	// contain /games/ in their path.
	var gameLinks []string
	for _, link := range links {
		if gameIDPattern.MatchString(link) {
			gameLinks = append(gameLinks, link)
		}
	}
	if len(gameLinks) == 0 {
		gameLinks = links
	}
	if len(gameLinks) == 0 {
		return nil, fmt.Errorf("no game links found on listing page")
	}

	g.logger.Infof("Found %d games on GameDistribution listing", len(gameLinks))
	return g.CapURLs(gameLinks), nil
}

// nextData mirrors the slice of the __NEXT_DATA__ payload we consume
type nextData struct {
	Props struct {
		PageProps struct {
			Game struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				ObjectID    string `json:"objectID"`
				Assets      []struct {
					Name  string `json:"name"`
					Width int    `json:"width"`
				} `json:"assets"`
			} `json:"game"`
		} `json:"pageProps"`
	} `json:"props"`
}

// ExtractGame extracts a raw game tuple from a parsed GameDistribution game
// page. The embedded __NEXT_DATA__ JSON is preferred; meta tags are the
// fallback. Returns nil when the page yields no usable name.
func (g *GameDistributionAdapter) ExtractGame(doc *goquery.Document, pageURL string) *types.RawGame {
	if raw := g.extractFromNextData(doc, pageURL); raw != nil {
		return raw
	}

	name := g.ExtractMetaContent(doc, "og:title")
	if name == "" {
		name = g.ExtractText(doc, "h1")
	}
	if name == "" {
		g.logger.Debugf("No game name found on %s", pageURL)
		return nil
	}

	description := g.ExtractMetaContent(doc, "og:description")
	if description == "" {
		description = g.ExtractMetaContent(doc, "description")
	}

	imageURL := g.ExtractMetaContent(doc, "og:image")
	if imageURL == "" {
		imageURL = g.ExtractAttribute(doc, `img[src*="img.gamedistribution.com"]`, "src")
	}
	if imageURL != "" {
		imageURL = g.ResolveURL(g.BaseURL, imageURL)
	}

	var gameAPIURL string
	if m := gameIDPattern.FindStringSubmatch(pageURL); m != nil {
		gameAPIURL = fmt.Sprintf("https://html5.gamedistribution.com/%s/", m[1])
	}

	return &types.RawGame{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		GameAPIURL:  gameAPIURL,
		URL:         pageURL,
	}
}

// extractFromNextData pulls game fields out of the script#__NEXT_DATA__
// payload embedded in the page. Returns nil when the payload is missing,
// malformed or has no title.
func (g *GameDistributionAdapter) extractFromNextData(doc *goquery.Document, pageURL string) *types.RawGame {
	payload := doc.Find(`script#__NEXT_DATA__`).First().Text()
	if payload == "" {
		return nil
	}

	var data nextData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		g.logger.Debugf("Failed to parse __NEXT_DATA__ on %s: %v", pageURL, err)
		return nil
	}

	game := data.Props.PageProps.Game
	if game.Title == "" {
		return nil
	}

	// Pick the widest asset as the cover image
	var imageURL string
	maxWidth := 0
	for _, asset := range game.Assets {
		if asset.Width > maxWidth && asset.Name != "" {
			imageURL = fmt.Sprintf("https://img.gamedistribution.com/%s", asset.Name)
			maxWidth = asset.Width
		}
	}

	var gameAPIURL string
	if game.ObjectID != "" {
		gameAPIURL = fmt.Sprintf("https://html5.gamedistribution.com/%s/", game.ObjectID)
	}

	return &types.RawGame{
		Name:        game.Title,
		Description: game.Description,
		ImageURL:    imageURL,
		GameAPIURL:  gameAPIURL,
		URL:         pageURL,
	}
}
