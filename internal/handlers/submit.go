package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/fieldtrack/work-update-pipeline/internal/submit"
	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

// Submitter runs one work update submission to completion
type Submitter interface {
	Submit(ctx context.Context, req submit.Request) (*update.Record, error)
}

// SubmitHandler handles work update submission requests
type SubmitHandler struct {
	submitter Submitter
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(s Submitter) *SubmitHandler {
	return &SubmitHandler{
		submitter: s,
	}
}

// submitRequest is the wire shape of POST /v1/submit
type submitRequest struct {
	Target      update.Target `json:"target"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Images      []string      `json:"images"`
}

// HandleSubmit handles POST /v1/submit - runs one submission to completion
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	log.Printf("Submitting work update: target=%s/%s title=%q images=%d",
		req.Target.Category, req.Target.Ref, req.Title, len(req.Images))

	record, err := h.submitter.Submit(r.Context(), submit.Request{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Target:      req.Target,
	})
	if err != nil {
		switch {
		case errors.Is(err, submit.ErrValidation):
			http.Error(w, fmt.Sprintf("Invalid submission: %v", err), http.StatusBadRequest)
		case errors.Is(err, submit.ErrAllUploadsFailed), errors.Is(err, submit.ErrPersist):
			log.Printf("Submission failed: %v", err)
			http.Error(w, fmt.Sprintf("Submission failed: %v", err), http.StatusBadGateway)
		default:
			log.Printf("Submission failed: %v", err)
			http.Error(w, fmt.Sprintf("Submission failed: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}
