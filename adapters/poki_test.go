package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"games-extractor/internal/types"
)

const pokiGamePage = `<html><head>
<title>Subway Surfers - Play Online</title>
<meta property="og:title" content="Subway Surfers">
<meta property="og:description" content="Run along the subway and dodge the trains">
<meta property="og:image" content="https://img.poki.com/subway-surfers.png">
</head><body>
<h1>Subway Surfers</h1>
<iframe id="game-element" src="/gameframe/subway-surfers"></iframe>
</body></html>`

func testConfig() *types.Config {
	config := types.DefaultConfig()
	config.RequestDelay = 10 * time.Millisecond
	config.MaxRetries = 1
	return config
}

func TestPokiAdapter_ExtractGame(t *testing.T) {
	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	doc, err := adapter.ParseHTML(pokiGamePage)
	require.NoError(t, err)

	raw := adapter.ExtractGame(doc, "https://poki.com/g/subway-surfers")

	require.NotNil(t, raw)
	assert.Equal(t, "Subway Surfers", raw.Name)
	assert.Equal(t, "Run along the subway and dodge the trains", raw.Description)
	assert.Equal(t, "https://img.poki.com/subway-surfers.png", raw.ImageURL)
	assert.Equal(t, "https://poki.com/gameframe/subway-surfers", raw.GameAPIURL)
	assert.Equal(t, "https://poki.com/g/subway-surfers", raw.URL)
}

func TestPokiAdapter_ExtractGame_CDNFallback(t *testing.T) {
	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	// No game iframe on the page; the API URL falls back to the CDN URL
	// derived from the /g/ slug
	doc, err := adapter.ParseHTML(`<html><body><h1>Maze Run</h1></body></html>`)
	require.NoError(t, err)

	raw := adapter.ExtractGame(doc, "https://poki.com/g/maze-run")

	require.NotNil(t, raw)
	assert.Equal(t, "Maze Run", raw.Name)
	assert.Equal(t, "https://game-cdn.poki.com/maze-run/index.html", raw.GameAPIURL)
}

func TestPokiAdapter_ExtractGame_MissingFieldsAreEmpty(t *testing.T) {
	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	doc, err := adapter.ParseHTML(`<html><body><h1>Bare Game</h1></body></html>`)
	require.NoError(t, err)

	raw := adapter.ExtractGame(doc, "https://poki.com/en/about")

	require.NotNil(t, raw)
	assert.Equal(t, "Bare Game", raw.Name)
	assert.Equal(t, "", raw.Description)
	assert.Equal(t, "", raw.ImageURL)
	assert.Equal(t, "", raw.GameAPIURL)
}

func TestPokiAdapter_ExtractGame_NoName(t *testing.T) {
	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	doc, err := adapter.ParseHTML(`<html><body><p>nothing here</p></body></html>`)
	require.NoError(t, err)

	raw := adapter.ExtractGame(doc, "https://poki.com/g/ghost")
	assert.Nil(t, raw)
}

func TestPokiAdapter_GetGameURLs(t *testing.T) {
	listing := `<html><body>
<a href="/g/subway-surfers">Subway Surfers</a>
<a href="/g/maze-run">Maze Run</a>
<a href="/g/subway-surfers">Subway Surfers again</a>
<a href="/about">About</a>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listing))
	}))
	defer server.Close()

	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()
	adapter.ListingURL = server.URL + "/en"
	adapter.BaseURL = server.URL

	urls, err := adapter.GetGameURLs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		server.URL + "/g/subway-surfers",
		server.URL + "/g/maze-run",
	}, urls)
}

func TestPokiAdapter_GetGameURLs_Cap(t *testing.T) {
	listing := `<html><body>
<a href="/g/one">1</a><a href="/g/two">2</a><a href="/g/three">3</a>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listing))
	}))
	defer server.Close()

	config := testConfig()
	config.MaxGamesPerSite = 2

	adapter := NewPokiAdapter(config, logrus.New())
	defer adapter.Close()
	adapter.ListingURL = server.URL + "/en"
	adapter.BaseURL = server.URL

	urls, err := adapter.GetGameURLs(context.Background())

	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestPokiAdapter_Website(t *testing.T) {
	adapter := NewPokiAdapter(testConfig(), logrus.New())
	defer adapter.Close()

	assert.Equal(t, types.WebsitePoki, adapter.Website())
}
