package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/storescouthq/storescout-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags"`
	Photo       *string    `json:"photo,omitempty"`
	Address     string     `json:"address"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	AuthorID    uuid.UUID  `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StorePagination carries cursor paging metadata alongside a page of stores.
type StorePagination struct {
	Total   int    `json:"total"`
	Current string `json:"current,omitempty"`
	Next    string `json:"next,omitempty"`
	Prev    string `json:"prev,omitempty"`
}

// StorePageDTO is a cursor-paginated page of stores.
type StorePageDTO struct {
	Items      []StoreDTO      `json:"items"`
	Pagination StorePagination `json:"pagination"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}

	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)

	return &StoreDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Tags:        tags,
		Photo:       m.Photo,
		Address:     m.Address,
		Lat:         m.Lat,
		Lng:         m.Lng,
		AuthorID:    m.AuthorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name        string
	Description *string
	Tags        []string
	Address     string
	Lat         float64
	Lng         float64
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name        *string
	Description *string
	Tags        *[]string
	Address     *string
	Lat         *float64
	Lng         *float64
	Photo       *string
}

func (c CreateStoreInput) toModel(authorID uuid.UUID) *models.Store {
	model := &models.Store{
		Name:        c.Name,
		Description: cloneStringPtr(c.Description),
		Tags:        cloneTags(c.Tags),
		Address:     c.Address,
		Lat:         c.Lat,
		Lng:         c.Lng,
		AuthorID:    authorID,
	}
	return model
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

func cloneTags(value []string) pq.StringArray {
	res := make(pq.StringArray, len(value))
	copy(res, value)
	return res
}
