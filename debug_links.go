package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"games-extractor/internal/types"
	"games-extractor/utils"
)

func main() {
	config := types.DefaultConfig()
	config.UseHeadlessBrowser = true // Use headless browser to test JavaScript-rendered listings
	config.Timeout = 2 * config.Timeout

	logger := &debugLogger{}

	fmt.Println("=== Testing Poki ===")
	probeSite("https://poki.com/en", `a[href*="/g/"]`, config, logger)

	fmt.Println("\n=== Testing GameDistribution ===")
	probeSite("https://gamedistribution.com/games/", `a[href*="/games/"]`, config, logger)

	fmt.Println("\n=== Testing GamePix ===")
	probeSite("https://www.gamepix.com/", `a[href*="/play/"]`, config, logger)
}

func probeSite(listingURL, gameSelector string, config *types.Config, logger types.Logger) {
	browserClient := utils.NewBrowserClient(config, logger)

	// Get the listing page using headless browser
	html, err := browserClient.GetListingContent(context.Background(), listingURL, gameSelector)
	if err != nil {
		log.Printf("Failed to get listing page: %v", err)
		return
	}

	// Parse HTML
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("Failed to parse HTML: %v", err)
		return
	}

	// Find all links
	fmt.Printf("Total links found: %d\n", doc.Find("a").Length())

	// Check the game link selector
	gameLinks := doc.Find(gameSelector)
	fmt.Printf("Links matching %s: %d\n", gameSelector, gameLinks.Length())

	count := 0
	gameLinks.Each(func(i int, s *goquery.Selection) {
		if count >= 10 {
			return
		}
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href != "" && len(href) < 100 {
			fmt.Printf("  %d: href='%s', text='%s'\n", i+1, href, text)
			count++
		}
	})

	// Check for other common game card patterns
	for _, selector := range []string{".game-card a", ".game-tile a", "[class*='game'] a"} {
		fmt.Printf("Links matching %s: %d\n", selector, doc.Find(selector).Length())
	}
}

type debugLogger struct{}

func (d *debugLogger) Debug(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Info(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Warn(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Error(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Debugf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Infof(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Warnf(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Errorf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
