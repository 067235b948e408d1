package rankings

import (
	"context"

	"gorm.io/gorm"
)

const tagCountsQuery = `
SELECT tag, count(*) AS count
FROM stores, unnest(tags) AS tag
GROUP BY tag
ORDER BY count DESC, tag ASC`

const topStoresQuery = `
SELECT s.id, s.name, s.slug, s.photo,
       count(r.id) AS review_count,
       avg(r.rating) AS average_rating
FROM stores s
JOIN reviews r ON r.store_id = s.id
GROUP BY s.id, s.name, s.slug, s.photo
HAVING count(r.id) >= ?
ORDER BY average_rating DESC
LIMIT ?`

const (
	minReviewsForTop = 2
	topStoresLimit   = 10
)

// Repository runs the ranking aggregations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to ranking queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TagCounts returns every tag in use with its store count, most used first.
// Ties break alphabetically so the list is stable.
func (r *Repository) TagCounts(ctx context.Context) ([]TagCountDTO, error) {
	var rows []TagCountDTO
	if err := r.db.WithContext(ctx).Raw(tagCountsQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopStores returns the ten best-rated stores that have at least two reviews.
func (r *Repository) TopStores(ctx context.Context) ([]TopStoreDTO, error) {
	var rows []TopStoreDTO
	if err := r.db.WithContext(ctx).
		Raw(topStoresQuery, minReviewsForTop, topStoresLimit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
