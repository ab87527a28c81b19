package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"games-extractor/internal/types"
	"games-extractor/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides common functionality for site adapters.
// It implements the Template Method pattern, providing a foundation
// that site-specific adapters can extend and customize.
type BaseAdapter struct {
	config        *types.Config        // Configuration settings (timeouts, browser settings, etc.)
	logger        types.Logger         // Structured logging interface
	httpClient    *utils.HTTPClient    // HTTP client for standard requests
	browserClient *utils.BrowserClient // Headless browser client for dynamic content

	// renderListings marks the site's listing pages as needing script
	// execution. It is a property of the site, set by the concrete adapter
	// constructor; Config.UseHeadlessBrowser remains the caller's global
	// switch and is never written by adapters.
	renderListings bool
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetListingContent retrieves a listing page. Sites whose listings are
// rendered client-side go through the headless browser (unless the caller
// disabled it globally): the page waits for readySelector to become visible,
// then is scrolled to the bottom so lazily loaded entries are present. All
// other cases are a plain GET.
func (b *BaseAdapter) GetListingContent(ctx context.Context, url, readySelector string) (string, error) {
	if b.renderListings && b.config.UseHeadlessBrowser {
		return b.browserClient.GetListingContent(ctx, url, readySelector)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// FetchGamePages fetches a set of game pages over HTTP with bounded
// concurrency. Game detail pages are static enough for direct GETs even when
// the listing needed a browser render.
func (b *BaseAdapter) FetchGamePages(ctx context.Context, urls []string) []utils.FetchResult {
	return b.httpClient.GetBatch(ctx, urls)
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractText extracts text from the first element matching a CSS selector.
// A missing element yields an empty string, not an error; absent fields are
// a normal condition on game pages.
func (b *BaseAdapter) ExtractText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// ExtractAttribute extracts an attribute value from the first element
// matching a CSS selector. Missing element or attribute yields "".
func (b *BaseAdapter) ExtractAttribute(doc *goquery.Document, selector string, attribute string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr(attribute, ""))
}

// ExtractMetaContent extracts the content attribute of a meta tag matched by
// property or name, e.g. ExtractMetaContent(doc, "og:title").
func (b *BaseAdapter) ExtractMetaContent(doc *goquery.Document, key string) string {
	if v := b.ExtractAttribute(doc, fmt.Sprintf(`meta[property="%s"]`, key), "content"); v != "" {
		return v
	}
	return b.ExtractAttribute(doc, fmt.Sprintf(`meta[name="%s"]`, key), "content")
}

// ExtractGameLinks finds all game page links matching the given selector,
// resolves them against the base URL and drops duplicates while preserving
// first-seen order.
func (b *BaseAdapter) ExtractGameLinks(doc *goquery.Document, selector string, baseURL string) []string {
	var links []string

	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}

		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		resolved := b.ResolveURL(baseURL, href)
		if resolved == "" {
			return
		}

		links = append(links, resolved)
	})

	return b.RemoveDuplicateURLs(links)
}

// ResolveURL converts a possibly relative href into an absolute URL against
// the site base URL. Returns "" for unparseable hrefs.
func (b *BaseAdapter) ResolveURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		if _, err := url.Parse(href); err != nil {
			return ""
		}
		return href
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}

// RemoveDuplicateURLs removes duplicate URLs from the slice
func (b *BaseAdapter) RemoveDuplicateURLs(urls []string) []string {
	seen := make(map[string]bool)
	var uniqueURLs []string

	for _, url := range urls {
		if !seen[url] {
			seen[url] = true
			uniqueURLs = append(uniqueURLs, url)
		}
	}

	return uniqueURLs
}

// CapURLs applies the per-site game cap from configuration. A cap of zero
// means no limit.
func (b *BaseAdapter) CapURLs(urls []string) []string {
	max := b.config.MaxGamesPerSite
	if max > 0 && len(urls) > max {
		b.logger.Debugf("Capping game URLs from %d to %d", len(urls), max)
		return urls[:max]
	}
	return urls
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}
