package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/spendlens/backend/internal/extraction"
	"github.com/spendlens/backend/internal/service"
)

func main() {
	// NOTE: Default is 8111 to avoid conflicts with other projects (not 8080)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8111"
	}

	ctx := context.Background()

	var ai *extraction.AIClient
	if aiURL := os.Getenv("AI_SERVICE_URL"); aiURL != "" {
		timeout := extraction.DefaultAITimeout
		if secs := os.Getenv("AI_TIMEOUT_SECONDS"); secs != "" {
			if n, err := strconv.Atoi(secs); err == nil && n > 0 {
				timeout = time.Duration(n) * time.Second
			}
		}
		ai = extraction.NewAIClient(aiURL, timeout)
		log.Printf("AI extraction service configured at %s (timeout %s)", aiURL, timeout)

		warmupAI(ctx, ai)
	} else {
		log.Println("No AI_SERVICE_URL set - extraction runs on heuristics only")
	}

	var structured extraction.StructuredExtractor
	if ai != nil {
		structured = ai
	}

	receiptService := service.NewReceiptService(extraction.NewOrchestrator(structured), ai)
	defer receiptService.Close()

	mux := http.NewServeMux()
	receiptService.Register(mux)

	// NOTE: Frontend runs on port 1234, not 3000
	allowedOrigins := []string{
		"http://localhost:1234", // Local frontend
		"http://127.0.0.1:1234", // Alternative local
		"https://spendlens.dev",
		"https://www.spendlens.dev",
		"https://*.vercel.app", // Vercel preview deployments
	}
	if os.Getenv("ENV") == "local" {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	log.Printf("Starting server on port %s", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// warmupAI probes the AI service's health with backoff so a sidecar
// that is still loading its model doesn't cost the first requests.
// Extraction calls themselves are never retried; the server starts
// either way and falls back to heuristics while the sidecar warms up.
func warmupAI(ctx context.Context, ai *extraction.AIClient) {
	warmupCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	health, err := extraction.WithRetry(warmupCtx, extraction.DefaultWarmupRetryConfig,
		func(ctx context.Context) (*extraction.AIHealthResponse, error) {
			return ai.HealthCheck(ctx)
		})
	if err != nil {
		log.Printf("AI service not ready after warm-up: %v", err)
		return
	}
	log.Printf("AI service ready: model=%s loaded=%v", health.ModelName, health.ModelLoaded)
}
