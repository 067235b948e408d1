package rankings

import (
	"github.com/google/uuid"
)

// TagCountDTO is one row of the tag frequency listing.
type TagCountDTO struct {
	Tag   string `gorm:"column:tag" json:"tag"`
	Count int    `gorm:"column:count" json:"count"`
}

// TagsPageDTO pairs the tag counts with the tag currently selected, if any.
type TagsPageDTO struct {
	Tags   []TagCountDTO `json:"tags"`
	Active string        `json:"active,omitempty"`
}

// TopStoreDTO is a ranked store projection with its review aggregate.
type TopStoreDTO struct {
	ID            uuid.UUID `gorm:"column:id" json:"id"`
	Name          string    `gorm:"column:name" json:"name"`
	Slug          string    `gorm:"column:slug" json:"slug"`
	Photo         *string   `gorm:"column:photo" json:"photo,omitempty"`
	ReviewCount   int       `gorm:"column:review_count" json:"review_count"`
	AverageRating float64   `gorm:"column:average_rating" json:"average_rating"`
}
