package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store represents a directory listing.
//
// Slug is derived from Name on create and whenever Name changes; the
// derivation lives in the stores service, not in a persistence hook.
type Store struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;not null;index"`
	Description *string        `gorm:"column:description"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[];not null;default:'{}'"`
	Photo       *string        `gorm:"column:photo"`
	Address     string         `gorm:"column:address;not null"`
	Lat         float64        `gorm:"column:lat;not null"`
	Lng         float64        `gorm:"column:lng;not null"`
	AuthorID    uuid.UUID      `gorm:"column:author_id;type:uuid;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
