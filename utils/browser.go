package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/chromedp/chromedp"
	"games-extractor/internal/types"
)

// BrowserClient provides headless browser functionality
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// GetListingContent retrieves a listing page, waiting for readySelector to
// become visible (bounded by the configured timeout) and then scrolling to
// the bottom repeatedly so lazily loaded entries are present in the snapshot.
// Scrolling stops when the page height stops growing or MaxScrollAttempts is
// reached. An empty readySelector falls back to a fixed initial wait.
func (b *BrowserClient) GetListingContent(ctx context.Context, url, readySelector string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	var html string

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if readySelector != "" {
		actions = append(actions, chromedp.WaitVisible(readySelector, chromedp.ByQuery))
	} else {
		actions = append(actions, chromedp.Sleep(3*time.Second))
	}
	actions = append(actions,
		b.scrollToBottom(),
		chromedp.OuterHTML("html", &html),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("failed to get listing content: %w", err)
	}

	b.logger.Debugf("Successfully retrieved listing content from %s (%d bytes)", url, len(html))
	return html, nil
}

// scrollToBottom returns an action that scrolls until the document height
// stops changing, bounded by MaxScrollAttempts.
func (b *BrowserClient) scrollToBottom() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var lastHeight int64
		if err := chromedp.Evaluate(`document.body.scrollHeight`, &lastHeight).Do(ctx); err != nil {
			return err
		}

		for attempt := 0; attempt < b.config.MaxScrollAttempts; attempt++ {
			if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); undefined`, nil).Do(ctx); err != nil {
				return err
			}
			if err := chromedp.Sleep(1 * time.Second).Do(ctx); err != nil {
				return err
			}

			var newHeight int64
			if err := chromedp.Evaluate(`document.body.scrollHeight`, &newHeight).Do(ctx); err != nil {
				return err
			}
			if newHeight == lastHeight {
				break
			}
			lastHeight = newHeight
		}

		b.logger.Debugf("Finished scrolling at height %d", lastHeight)
		return nil
	})
}
