package submit

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldtrack/work-update-pipeline/internal/metrics"
	"github.com/fieldtrack/work-update-pipeline/internal/progress"
	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

// Uploader uploads one locally captured image and returns its remote URL.
// Implementations report progress through report as an integer 0-100,
// non-decreasing per call.
type Uploader interface {
	Upload(ctx context.Context, resourceID, target string, report func(percent int)) (string, error)
}

// Recorder persists an assembled work update on the backend.
type Recorder interface {
	CreateUpdate(ctx context.Context, rec update.Record) (*update.Record, error)
}

// Request carries one submission's input: text fields, the ordered local
// image resources, and the target the update attaches to. Progress is an
// optional per-tick callback for the UI layer.
type Request struct {
	Title       string
	Description string
	Images      []string
	Target      update.Target
	Progress    progress.Sink
}

// Orchestrator turns a submission request into a persisted work update, or
// a reported failure. Each Submit call runs an independent state machine
// with its own progress tracker.
type Orchestrator struct {
	uploader Uploader
	recorder Recorder
}

// NewOrchestrator creates a new submission orchestrator
func NewOrchestrator(uploader Uploader, recorder Recorder) *Orchestrator {
	return &Orchestrator{
		uploader: uploader,
		recorder: recorder,
	}
}

// uploadResult is one image's settled outcome, indexed by input position so
// the final record preserves the user-supplied order.
type uploadResult struct {
	url string
	err error
}

// Submit validates the request, uploads all images concurrently, waits for
// every upload to settle, assembles the successful URLs in input order, and
// persists the record. Images whose upload failed are dropped from the
// record; the submission only aborts when no image survived.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (*update.Record, error) {
	runID := uuid.New().String()

	// Validating: reject before any I/O.
	if strings.TrimSpace(req.Title) == "" {
		metrics.SubmissionsTotal.WithLabelValues(metrics.StatusInvalid).Inc()
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(req.Images) == 0 {
		metrics.SubmissionsTotal.WithLabelValues(metrics.StatusInvalid).Inc()
		return nil, fmt.Errorf("%w: at least one image is required", ErrValidation)
	}

	start := time.Now()
	tracker := progress.NewTracker(req.Progress)

	log.Printf("[%s] Starting submission: target=%s/%s images=%d", runID, req.Target.Category, req.Target.Ref, len(req.Images))

	// Uploading: one goroutine per image, all started concurrently. Wait
	// for all to settle, never fail-fast on the first error.
	results := make([]uploadResult, len(req.Images))
	var wg sync.WaitGroup
	for i, resourceID := range req.Images {
		wg.Add(1)
		go func(i int, resourceID string) {
			defer wg.Done()

			tracker.Record(resourceID, 0)
			url, err := o.uploader.Upload(ctx, resourceID, req.Target.Ref, func(percent int) {
				tracker.Record(resourceID, percent)
			})
			if err != nil {
				metrics.UploadsTotal.WithLabelValues(metrics.StatusFailed).Inc()
				results[i] = uploadResult{err: err}
				return
			}

			tracker.Record(resourceID, 100)
			metrics.UploadsTotal.WithLabelValues(metrics.StatusCompleted).Inc()
			results[i] = uploadResult{url: url}
		}(i, resourceID)
	}
	wg.Wait()

	// Assembling: keep successes in original input order.
	images := make([]string, 0, len(results))
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			log.Printf("[%s] Upload failed for %s: %v", runID, req.Images[i], res.err)
			continue
		}
		images = append(images, res.url)
	}

	if len(images) == 0 {
		log.Printf("[%s] All %d upload(s) failed, aborting submission", runID, failed)
		metrics.SubmissionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, fmt.Errorf("%w: %d image(s)", ErrAllUploadsFailed, failed)
	}
	if failed > 0 {
		// Failed images are dropped and the submission proceeds with the
		// rest. Known product decision, flagged to product owners.
		log.Printf("[%s] Dropped %d failed upload(s), continuing with %d image(s)", runID, failed, len(images))
	}

	rec := update.Record{
		Target:      req.Target,
		Title:       req.Title,
		Description: req.Description,
		Images:      images,
	}

	// Persisting: one create-update call, no retry. Orphaned assets are
	// not cleaned up on failure.
	created, err := o.recorder.CreateUpdate(ctx, rec)
	if err != nil {
		log.Printf("[%s] Persist failed: %v", runID, err)
		metrics.SubmissionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.StatusCompleted).Inc()
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())

	log.Printf("[%s] Submission completed: id=%s images=%d overall=%d%%", runID, created.ID, len(created.Images), tracker.Overall())
	return created, nil
}
