package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"games-extractor/internal/types"
)

// FetchResult pairs a fetched body (or error) with its originating URL.
// Batch results are unordered; consumers must match on URL.
type FetchResult struct {
	URL  string
	Body []byte
	Err  error
}

// HTTPClient provides HTTP functionality with rate limiting and retries
type HTTPClient struct {
	client  *http.Client
	config  *types.Config
	logger  types.Logger
	limiter *time.Ticker
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config *types.Config, logger types.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &HTTPClient{
		client:  client,
		config:  config,
		logger:  logger,
		limiter: time.NewTicker(config.RequestDelay),
	}
}

// Get performs a GET request with rate limiting and retries
func (h *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		// Wait for rate limiter
		select {
		case <-h.limiter.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		h.logger.Debugf("Making request to %s (attempt %d/%d)", url, attempt+1, h.config.MaxRetries+1)

		body, err := h.fetch(ctx, url)
		if err != nil {
			lastErr = err
			h.logger.Warnf("Request failed (attempt %d): %v", attempt+1, err)
			continue
		}

		h.logger.Debugf("Successfully retrieved %d bytes from %s", len(body), url)
		return body, nil
	}

	return nil, fmt.Errorf("all retry attempts failed: %w", lastErr)
}

// GetBatch issues GET requests for all URLs with at most
// MaxConcurrentRequests in flight at once. Each URL is attempted exactly
// once; failures are returned in their FetchResult rather than aborting the
// batch. Results are returned in completion order, not request order.
func (h *HTTPClient) GetBatch(ctx context.Context, urls []string) []FetchResult {
	sem := make(chan struct{}, h.config.MaxConcurrentRequests)
	results := make(chan FetchResult, len(urls))

	var wg sync.WaitGroup
	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results <- FetchResult{URL: u, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			body, err := h.fetch(ctx, u)
			results <- FetchResult{URL: u, Body: body, Err: err}
		}(u)
	}
	wg.Wait()
	close(results)

	collected := make([]FetchResult, 0, len(urls))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}

// fetch performs a single GET attempt
func (h *HTTPClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// Close cleans up resources
func (h *HTTPClient) Close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}
