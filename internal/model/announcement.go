package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a staff-authored bulletin shown to clients. ImageURL
// points into the external object store; this service never touches the
// bucket itself.
type Announcement struct {
	ID        uuid.UUID `json:"announcement_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  uuid.UUID `json:"author_id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
