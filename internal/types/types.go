package types

import "time"

// Website identifies the source platform for a record.
type Website string

const (
	WebsitePoki             Website = "Poki"
	WebsiteGameDistribution Website = "GameDistribution"
	WebsiteGamePix          Website = "GamePix"
)

// RawGame is the unnormalized per-game tuple produced by a site adapter.
// Fields other than URL may be empty when the source page lacks them.
type RawGame struct {
	Name        string
	Description string
	ImageURL    string
	GameAPIURL  string
	URL         string
}

// GameRecord is the normalized output unit written to the CSV sink.
type GameRecord struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	GameAPIURL  string    `json:"game_api_url"`
	Website     Website   `json:"website"`
	CapturedAt  time.Time `json:"captured_at"`
}

// SiteResult represents the extraction result for a single site
type SiteResult struct {
	Website Website      `json:"website"`
	Records []GameRecord `json:"records"`
	Skipped int          `json:"skipped,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ExtractionResult represents the complete extraction result
type ExtractionResult struct {
	Sites []SiteResult `json:"sites"`
}

// Config holds the configuration for the extractor
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	MaxGamesPerSite       int
	MaxScrollAttempts     int
	UseHeadlessBrowser    bool
	UserAgent             string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 5,
		MaxGamesPerSite:       0, // 0 means no cap
		MaxScrollAttempts:     5,
		UseHeadlessBrowser:    true,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
