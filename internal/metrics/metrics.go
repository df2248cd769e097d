package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission and upload metrics, exposed by the agent's /metrics endpoint.
var (
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workupdate_submissions_total",
		Help: "Work update submissions by terminal status.",
	}, []string{"status"})

	SubmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "workupdate_submission_duration_seconds",
		Help:    "Wall time of a full submission (uploads plus persist).",
		Buckets: prometheus.DefBuckets,
	})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workupdate_image_uploads_total",
		Help: "Individual image uploads by outcome.",
	}, []string{"status"})

	UploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workupdate_image_upload_bytes_total",
		Help: "Total image bytes handed to the asset store.",
	})
)

// Label values for the status dimension.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusInvalid   = "invalid"
)
