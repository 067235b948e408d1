package reviews

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/pkg/db/models"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

type reviewRow struct {
	ID          uuid.UUID `gorm:"column:id"`
	StoreID     uuid.UUID `gorm:"column:store_id"`
	AuthorID    uuid.UUID `gorm:"column:author_id"`
	AuthorName  string    `gorm:"column:author_name"`
	AuthorPhoto *string   `gorm:"column:author_photo"`
	Text        *string   `gorm:"column:text"`
	Rating      int       `gorm:"column:rating"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// ListByStore returns the store's reviews with author profiles, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ReviewDTO, error) {
	var rows []reviewRow
	if err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.id, rv.store_id, rv.author_id, u.name AS author_name, u.photo AS author_photo, rv.text, rv.rating, rv.created_at").
		Joins("JOIN users u ON u.id = rv.author_id").
		Where("rv.store_id = ?", storeID).
		Order("rv.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ReviewDTO{
			ID:          row.ID,
			StoreID:     row.StoreID,
			AuthorID:    row.AuthorID,
			AuthorName:  row.AuthorName,
			AuthorPhoto: row.AuthorPhoto,
			Text:        row.Text,
			Rating:      row.Rating,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items, nil
}
