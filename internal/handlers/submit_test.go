package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrack/work-update-pipeline/internal/submit"
	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

type fakeSubmitter struct {
	req    submit.Request
	record *update.Record
	err    error
}

func (f *fakeSubmitter) Submit(ctx context.Context, req submit.Request) (*update.Record, error) {
	f.req = req
	return f.record, f.err
}

func TestHandleSubmitSuccess(t *testing.T) {
	submitter := &fakeSubmitter{
		record: &update.Record{
			ID:     "upd-1",
			Title:  "Plumbing done",
			Images: []string{"https://cdn.example/a.jpg"},
		},
	}
	h := NewSubmitHandler(submitter)

	body := `{"target":{"ref":"flat-12","category":"flat"},"title":"Plumbing done","description":"d","images":["a.jpg"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleSubmit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Plumbing done", submitter.req.Title)
	assert.Equal(t, update.Target{Ref: "flat-12", Category: "flat"}, submitter.req.Target)
	assert.Equal(t, []string{"a.jpg"}, submitter.req.Images)

	var got update.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "upd-1", got.ID)
}

func TestHandleSubmitBadJSON(t *testing.T) {
	h := NewSubmitHandler(&fakeSubmitter{})

	req := httptest.NewRequest(http.MethodPost, "/v1/submit", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubmitMethodNotAllowed(t *testing.T) {
	h := NewSubmitHandler(&fakeSubmitter{})

	req := httptest.NewRequest(http.MethodGet, "/v1/submit", nil)
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSubmitErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", submit.ErrValidation, http.StatusBadRequest},
		{"all uploads failed", submit.ErrAllUploadsFailed, http.StatusBadGateway},
		{"persist failed", submit.ErrPersist, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSubmitHandler(&fakeSubmitter{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/v1/submit", strings.NewReader(`{"title":"t","images":["a"]}`))
			rec := httptest.NewRecorder()
			h.HandleSubmit(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
