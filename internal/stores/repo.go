package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storescouthq/storescout-backend/pkg/db/models"
	"github.com/storescouthq/storescout-backend/pkg/pagination"
)

// distanceExpr computes the haversine distance in meters between a store row
// and the supplied point. least() guards acos against rounding above 1.
const distanceExpr = `6371000 * acos(least(1.0, cos(radians(?)) * cos(radians(lat)) * cos(radians(lng) - radians(?)) + sin(radians(?)) * sin(radians(lat))))`

const (
	nearMaxDistanceMeters = 10000
	nearLimit             = 10
	searchLimit           = 5
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx persists a new store row using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return tx.Create(store).Error
}

// UpdateWithTx saves the store using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return tx.Save(store).Error
}

// CountSlugMatchesWithTx counts stores whose slug matches the regex pattern.
func (r *Repository) CountSlugMatchesWithTx(tx *gorm.DB, pattern string) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	var count int64
	if err := tx.Model(&models.Store{}).Where("slug ~* ?", pattern).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySlug loads a store by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByAuthor returns all stores created by the provided user.
func (r *Repository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// List returns a cursor-paginated page of stores, newest first. An optional
// tag narrows the page to stores carrying it.
func (r *Repository) List(ctx context.Context, tag, cursor string, limit int) (StorePageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	cursorValue := strings.TrimSpace(cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return StorePageDTO{}, err
	}

	query := r.db.WithContext(ctx).Model(&models.Store{})
	countQuery := r.db.WithContext(ctx).Model(&models.Store{})
	if tag != "" {
		query = query.Where("? = ANY(tags)", tag)
		countQuery = countQuery.Where("? = ANY(tags)", tag)
	}

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Store
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error; err != nil {
		return StorePageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return StorePageDTO{}, err
	}

	items := make([]StoreDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, *FromModel(&resultRows[i]))
	}

	prevCursor := ""
	if cursorValue != "" {
		prevCursor = cursorValue
	}

	return StorePageDTO{
		Items: items,
		Pagination: StorePagination{
			Total:   int(total),
			Current: cursorValue,
			Next:    nextCursor,
			Prev:    prevCursor,
		},
	}, nil
}

// Search runs a ranked full-text search over store names and descriptions.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Store, error) {
	var stores []models.Store
	rankOrder := clause.OrderBy{
		Expression: clause.Expr{
			SQL:  "ts_rank(to_tsvector('english', name || ' ' || coalesce(description, '')), plainto_tsquery('english', ?)) DESC",
			Vars: []interface{}{query},
		},
	}
	if err := r.db.WithContext(ctx).
		Where("to_tsvector('english', name || ' ' || coalesce(description, '')) @@ plainto_tsquery('english', ?)", query).
		Order(rankOrder).
		Limit(searchLimit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Near returns the closest stores within 10km of the point, nearest first.
func (r *Repository) Near(ctx context.Context, lat, lng float64) ([]models.Store, error) {
	var stores []models.Store
	distance := gorm.Expr(distanceExpr, lat, lng, lat)
	distanceOrder := clause.OrderBy{
		Expression: clause.Expr{
			SQL:  distanceExpr + " ASC",
			Vars: []interface{}{lat, lng, lat},
		},
	}
	if err := r.db.WithContext(ctx).
		Where("? < ?", distance, nearMaxDistanceMeters).
		Order(distanceOrder).
		Limit(nearLimit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}
