package extractor

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"games-extractor/adapters"
	"games-extractor/internal/types"
	"games-extractor/sink"
)

const gamePixListing = `<html><body>
<a href="/play/sky-duel">Sky Duel</a>
<a href="/play/maze-run">Maze Run</a>
</body></html>`

const skyDuelPage = `<html><head>
<meta name="description" content="Fly and fight">
<meta property="og:image" content="http://x/a.png">
</head><body>
<h1>Sky Duel</h1>
<iframe src="http://x/embed/a.json"></iframe>
</body></html>`

const mazeRunPage = `<html><head>
<meta property="og:image" content="http://x/b.png">
</head><body>
<h1>Maze Run</h1>
<iframe src="http://x/embed/b.json"></iframe>
</body></html>`

// newGamePixFixture starts a server mimicking the GamePix listing plus two
// game pages and returns an extractor pointed at it.
func newGamePixFixture(t *testing.T) (*httptest.Server, *SiteExtractor) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gamePixListing))
	})
	mux.HandleFunc("/play/sky-duel", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(skyDuelPage))
	})
	mux.HandleFunc("/play/maze-run", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mazeRunPage))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	config := types.DefaultConfig()
	config.RequestDelay = 10 * time.Millisecond
	config.MaxRetries = 1
	config.UseHeadlessBrowser = false // Fixture pages are served statically

	logger := logrus.New()
	adapter := adapters.NewGamePixAdapter(config, logger)
	adapter.ListingURL = server.URL + "/"
	adapter.BaseURL = server.URL

	ext := &SiteExtractor{adapter: adapter, logger: logger}
	t.Cleanup(ext.Close)

	return server, ext
}

func TestSiteExtractor_ExtractAll(t *testing.T) {
	server, ext := newGamePixFixture(t)

	records, skipped, err := ext.ExtractAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, records, 2)

	// Batch results are unordered
	sort.Slice(records, func(i, j int) bool { return records[i].Name > records[j].Name })

	for _, record := range records {
		assert.NotEmpty(t, record.Name)
		assert.NotEmpty(t, record.URL)
		assert.NotEmpty(t, record.Website)
		assert.False(t, record.CapturedAt.IsZero())
		assert.Equal(t, types.WebsiteGamePix, record.Website)
	}

	assert.Equal(t, "Sky Duel", records[0].Name)
	assert.Equal(t, "Fly and fight", records[0].Description)
	assert.Equal(t, server.URL+"/play/sky-duel", records[0].URL)

	assert.Equal(t, "Maze Run", records[1].Name)
	assert.Equal(t, "", records[1].Description)
	assert.Equal(t, "http://x/b.png", records[1].ImageURL)
}

func TestSiteExtractor_ExtractAll_SkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gamePixListing))
	})
	mux.HandleFunc("/play/sky-duel", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(skyDuelPage))
	})
	mux.HandleFunc("/play/maze-run", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	config := types.DefaultConfig()
	config.RequestDelay = 10 * time.Millisecond
	config.MaxRetries = 1
	config.UseHeadlessBrowser = false

	logger := logrus.New()
	adapter := adapters.NewGamePixAdapter(config, logger)
	adapter.ListingURL = server.URL + "/"
	adapter.BaseURL = server.URL

	ext := &SiteExtractor{adapter: adapter, logger: logger}
	defer ext.Close()

	records, skipped, err := ext.ExtractAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "Sky Duel", records[0].Name)
}

func TestSiteExtractor_ExtractAll_ListingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	config := types.DefaultConfig()
	config.RequestDelay = 10 * time.Millisecond
	config.MaxRetries = 1
	config.UseHeadlessBrowser = false

	logger := logrus.New()
	adapter := adapters.NewGamePixAdapter(config, logger)
	adapter.ListingURL = server.URL + "/"
	adapter.BaseURL = server.URL

	ext := &SiteExtractor{adapter: adapter, logger: logger}
	defer ext.Close()

	_, _, err := ext.ExtractAll(context.Background())
	assert.Error(t, err)
}

// End-to-end: fixture listing through extraction, normalization and the CSV
// sink, then re-read with a standard CSV reader.
func TestSiteExtractor_EndToEnd_CSV(t *testing.T) {
	_, ext := newGamePixFixture(t)

	records, skipped, err := ext.ExtractAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, skipped)

	path := filepath.Join(t.TempDir(), "games_data.csv")
	require.NoError(t, sink.WriteCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3) // header + two data rows
	assert.Equal(t, sink.Header, rows[0])

	byName := map[string][]string{}
	for _, row := range rows[1:] {
		require.Len(t, row, 7)
		byName[row[0]] = row
		assert.Equal(t, "GamePix", row[5])

		// Timestamp column must be valid ISO-8601
		ts, err := time.Parse(time.RFC3339, row[6])
		require.NoError(t, err)
		assert.False(t, ts.IsZero())
	}

	require.Contains(t, byName, "Sky Duel")
	require.Contains(t, byName, "Maze Run")
	assert.Equal(t, "Fly and fight", byName["Sky Duel"][2])
	assert.Equal(t, "", byName["Maze Run"][2])
}
