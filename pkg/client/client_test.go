package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

func TestCreateUpdate(t *testing.T) {
	var received update.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/updates", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		created := received
		created.ID = "upd-42"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}))
	defer server.Close()

	c := New(server.URL)
	record, err := c.CreateUpdate(context.Background(), update.Record{
		Target:      update.Target{Ref: "flat-12", Category: update.CategoryFlat},
		Title:       "Plumbing done",
		Description: "Pipes installed in unit 4B",
		Images:      []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, "upd-42", record.ID)
	assert.Equal(t, "Plumbing done", received.Title)
	assert.Equal(t, update.Target{Ref: "flat-12", Category: update.CategoryFlat}, received.Target)
	assert.Equal(t, []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"}, received.Images)
}

func TestCreateUpdateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateUpdate(context.Background(), update.Record{Title: "t"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestCreateUpdateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateUpdate(context.Background(), update.Record{Title: "t"})
	require.Error(t, err)
}
