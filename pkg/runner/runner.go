package runner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fieldtrack/work-update-pipeline/internal/metrics"
	"github.com/fieldtrack/work-update-pipeline/internal/preprocess"
	"github.com/fieldtrack/work-update-pipeline/internal/storage"
	"github.com/fieldtrack/work-update-pipeline/internal/submit"
	"github.com/fieldtrack/work-update-pipeline/internal/uploader"
	"github.com/fieldtrack/work-update-pipeline/pkg/client"
	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

// Config holds the configuration for initializing the submission runner
type Config struct {
	AssetBaseURL string             // URL of the asset store
	APIBaseURL   string             // URL of the work-update backend API
	ImageDir     string             // Base directory for locally captured images
	HTTPTimeout  time.Duration      // Per-request timeout; zero means 30s
	Preprocess   preprocess.Options // Image preprocessing before upload
}

// Runner provides a high-level API for submitting work updates. Configure
// endpoints once, then call Submit per update.
type Runner struct {
	orchestrator *submit.Orchestrator
}

// New creates and initializes a new submission runner
func New(cfg Config) (*Runner, error) {
	if cfg.AssetBaseURL == "" {
		return nil, fmt.Errorf("asset base URL is required")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}

	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	source, err := storage.NewFilesystemSource(cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image source: %w", err)
	}

	// Compose source, preprocessing, and HTTP transfer into the uploader
	// the orchestrator drives per image.
	imageUploader := &sourceUploader{
		source:     source,
		assets:     uploader.NewWithHTTPClient(cfg.AssetBaseURL, httpClient),
		preprocess: cfg.Preprocess,
	}

	recorder := client.NewWithHTTPClient(cfg.APIBaseURL, httpClient)

	return &Runner{
		orchestrator: submit.NewOrchestrator(imageUploader, recorder),
	}, nil
}

// Submit runs one work update submission end to end
func (r *Runner) Submit(ctx context.Context, req submit.Request) (*update.Record, error) {
	return r.orchestrator.Submit(ctx, req)
}

// sourceUploader implements submit.Uploader: resolve the local resource,
// optionally shrink it, then transfer it to the asset store.
type sourceUploader struct {
	source     storage.Source
	assets     *uploader.Uploader
	preprocess preprocess.Options
}

func (s *sourceUploader) Upload(ctx context.Context, resourceID, target string, report func(percent int)) (string, error) {
	reader, err := s.source.GetReader(ctx, resourceID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	data, contentType := preprocess.Shrink(data, s.preprocess)
	metrics.UploadBytes.Add(float64(len(data)))

	filename := filepath.Base(resourceID)
	return s.assets.Upload(ctx, filename, target, contentType, data, report)
}
