package update

import "time"

// Target identifies what a work update attaches to: an entity reference
// (unit, building, or row-house section id) plus an update-category tag.
// The pipeline passes it through to the backend untouched.
type Target struct {
	Ref      string `json:"ref"`
	Category string `json:"category"`
}

// Record represents a persisted work update: a titled, described progress
// note carrying the remote URLs of its attached images.
type Record struct {
	ID          string    `json:"id,omitempty"`
	Target      Target    `json:"target"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Category constants (match backend conventions)
const (
	CategoryBasic   = "basic"
	CategorySection = "section"
	CategoryFlat    = "flat"
)
