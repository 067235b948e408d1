package reviews

import (
	"time"

	"github.com/google/uuid"
)

// ReviewDTO is a review joined with its author's public profile.
type ReviewDTO struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorPhoto *string   `json:"author_photo,omitempty"`
	Text        *string   `json:"text,omitempty"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateReviewInput captures the fields needed to leave a review.
type CreateReviewInput struct {
	Text   *string
	Rating int
}
