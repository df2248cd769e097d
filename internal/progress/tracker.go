package progress

import "sync"

// Sink receives a progress tick for one image. The pipeline invokes it on
// every recorded tick; the UI layer supplies it to render per-item bars.
type Sink func(key string, percent int)

// Tracker holds a live view of per-image upload progress for one submission.
// A fresh Tracker is created per submission; entries are keyed by the local
// resource id and are never removed mid-submission. Uploads report from
// their own goroutines, so access is mutex-guarded.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]int
	sink    Sink
}

// NewTracker creates a tracker for one submission. sink may be nil.
func NewTracker(sink Sink) *Tracker {
	return &Tracker{
		entries: make(map[string]int),
		sink:    sink,
	}
}

// Record upserts the completion percentage for key and forwards the tick to
// the sink. Monotonicity is the uploader's contract, not re-checked here.
func (t *Tracker) Record(key string, percent int) {
	t.mu.Lock()
	t.entries[key] = percent
	t.mu.Unlock()

	// Sink runs outside the lock so it may call Snapshot or Overall.
	if t.sink != nil {
		t.sink(key, percent)
	}
}

// Reset clears all entries. Called at the start of a new submission, never
// mid-submission.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]int)
}

// Snapshot returns a copy of the full mapping for the UI layer.
func (t *Tracker) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make(map[string]int, len(t.entries))
	for k, v := range t.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Overall returns the average completion percentage across all entries, or
// zero when nothing has been recorded yet.
func (t *Tracker) Overall() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return 0
	}

	total := 0
	for _, v := range t.entries {
		total += v
	}
	return total / len(t.entries)
}
