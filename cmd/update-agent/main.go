package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldtrack/work-update-pipeline/internal/config"
	"github.com/fieldtrack/work-update-pipeline/internal/handlers"
	"github.com/fieldtrack/work-update-pipeline/internal/preprocess"
	"github.com/fieldtrack/work-update-pipeline/pkg/runner"
)

// Submission agent: exposes the update pipeline over HTTP for field tooling
// that cannot link the library directly.
func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("WORKUPDATE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Work Update Agent")
	log.Printf("  Asset store: %s", cfg.AssetBaseURL)
	log.Printf("  Backend API: %s", cfg.APIBaseURL)
	log.Printf("  Image directory: %s", cfg.ImageDir)
	log.Printf("  HTTP address: %s", cfg.AgentAddr)

	r, err := runner.New(runner.Config{
		AssetBaseURL: cfg.AssetBaseURL,
		APIBaseURL:   cfg.APIBaseURL,
		ImageDir:     cfg.ImageDir,
		HTTPTimeout:  cfg.HTTPTimeout,
		Preprocess: preprocess.Options{
			MaxDimension: cfg.MaxDimension,
			JPEGQuality:  cfg.JPEGQuality,
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize runner: %v", err)
	}

	// Create HTTP server
	mux := http.NewServeMux()

	submitHandler := handlers.NewSubmitHandler(r)

	// Register handlers
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/v1/submit", submitHandler.HandleSubmit)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.AgentAddr,
		Handler: mux,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Agent ready on %s", cfg.AgentAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// handleHealth returns health status
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}
