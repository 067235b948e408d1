package hearts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	"github.com/storescouthq/storescout-backend/pkg/pagination"
)

type heartedStoreRow struct {
	ID             uuid.UUID      `gorm:"column:id"`
	Name           string         `gorm:"column:name"`
	Slug           string         `gorm:"column:slug"`
	Description    *string        `gorm:"column:description"`
	Tags           pq.StringArray `gorm:"column:tags;type:text[]"`
	Photo          *string        `gorm:"column:photo"`
	Address        string         `gorm:"column:address"`
	Lat            float64        `gorm:"column:lat"`
	Lng            float64        `gorm:"column:lng"`
	AuthorID       uuid.UUID      `gorm:"column:author_id"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	HeartID        uuid.UUID      `gorm:"column:heart_id"`
	HeartCreatedAt time.Time      `gorm:"column:heart_created_at"`
}

func (r heartedStoreRow) toStore() *models.Store {
	return &models.Store{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Tags:        r.Tags,
		Photo:       r.Photo,
		Address:     r.Address,
		Lat:         r.Lat,
		Lng:         r.Lng,
		AuthorID:    r.AuthorID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Repository encapsulates heart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a hearts repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Has reports whether the user has hearted the store.
func (r *Repository) Has(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Heart{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a heart and ignores duplicates.
func (r *Repository) Add(ctx context.Context, userID, storeID uuid.UUID) error {
	if userID == uuid.Nil || storeID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO hearts (user_id, store_id) VALUES (?, ?) ON CONFLICT (user_id, store_id) DO NOTHING`, userID, storeID).
		Error
}

// Remove deletes the user-store heart if it exists.
func (r *Repository) Remove(ctx context.Context, userID, storeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&models.Heart{}).
		Error
}

// CountForUser returns how many stores the user has hearted.
func (r *Repository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Heart{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListStores returns a cursor-paginated page of stores the user hearted,
// most recently hearted first. The cursor tracks the heart row, not the store.
func (r *Repository) ListStores(ctx context.Context, userID uuid.UUID, cursor string, limit int) (stores.StorePageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	cursorValue := strings.TrimSpace(cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return stores.StorePageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("hearts h").
		Select("s.*, h.id AS heart_id, h.created_at AS heart_created_at").
		Joins("JOIN stores s ON s.id = h.store_id").
		Where("h.user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(h.created_at < ?) OR (h.created_at = ? AND h.id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("h.created_at DESC").Order("h.id DESC").Limit(limitWithBuffer)

	var records []heartedStoreRow
	if err := query.Scan(&records).Error; err != nil {
		return stores.StorePageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.HeartCreatedAt,
			ID:        last.HeartID,
		})
	}

	total, err := r.CountForUser(ctx, userID)
	if err != nil {
		return stores.StorePageDTO{}, err
	}

	items := make([]stores.StoreDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, *stores.FromModel(resultRows[i].toStore()))
	}

	prevCursor := ""
	if cursorValue != "" {
		prevCursor = cursorValue
	}

	return stores.StorePageDTO{
		Items: items,
		Pagination: stores.StorePagination{
			Total:   int(total),
			Current: cursorValue,
			Next:    nextCursor,
			Prev:    prevCursor,
		},
	}, nil
}
