package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"games-extractor/extractor"
	"games-extractor/internal/types"
)

// APIRequest represents the request body for the API
type APIRequest struct {
	Sites []string `json:"sites"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool                    `json:"success"`
	Data    *types.ExtractionResult `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger *logrus.Logger
	config *types.Config
}

// NewServer creates a new API server
func NewServer() *Server {
	// Load .env file if present
	_ = godotenv.Load()

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Server{
		logger: logger,
		config: types.DefaultConfig(),
	}
}

// handleExtract handles the extraction API endpoint
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight requests
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Only allow POST requests
	if r.Method != "POST" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request body
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Default to all three sites when none are given
	if len(req.Sites) == 0 {
		req.Sites = []string{"poki", "gamedistribution", "gamepix"}
	}

	// Clean site names
	for i, site := range req.Sites {
		req.Sites[i] = strings.ToLower(strings.TrimSpace(site))
	}

	s.logger.Infof("API request received for sites: %v", req.Sites)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	var siteResults []types.SiteResult

	for _, site := range req.Sites {
		s.logger.Infof("Processing site: %s", site)

		var siteExtractor *extractor.SiteExtractor

		switch site {
		case "poki":
			siteExtractor = extractor.NewPokiExtractor(s.config, s.logger)
		case "gamedistribution":
			siteExtractor = extractor.NewGameDistributionExtractor(s.config, s.logger)
		case "gamepix":
			siteExtractor = extractor.NewGamePixExtractor(s.config, s.logger)
		default:
			s.logger.Warnf("Unknown site: %s, skipping", site)
			continue
		}

		defer siteExtractor.Close()

		records, skipped, err := siteExtractor.ExtractAll(ctx)
		siteResult := types.SiteResult{
			Website: siteExtractor.Website(),
			Records: records,
			Skipped: skipped,
		}
		if err != nil {
			s.logger.Warnf("Failed to extract from %s: %v", site, err)
			siteResult.Error = err.Error()
		}
		siteResults = append(siteResults, siteResult)
	}

	results := &types.ExtractionResult{
		Sites: siteResults,
	}

	// Send success response
	response := APIResponse{
		Success: true,
		Data:    results,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode error response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Start starts the API server
func (s *Server) Start(port string) error {
	// Setup routes
	http.HandleFunc("/extract", s.handleExtract)
	http.HandleFunc("/health", s.handleHealth)

	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /extract - Extract game metadata from the supported sites")
	s.logger.Info("  GET  /health  - Health check")

	return http.ListenAndServe(":"+port, nil)
}

func main() {
	// Get port from environment variable, default to 8080
	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
		fmt.Printf("Using port from environment variable API_PORT: %s\n", serverPort)
	} else {
		fmt.Printf("No API_PORT environment variable found, using default: %s\n", serverPort)
	}

	// Create and start server
	server := NewServer()

	// Start the server
	log.Printf("Starting API server on port %s", serverPort)
	log.Fatal(server.Start(serverPort))
}
