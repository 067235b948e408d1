package models

import (
	"time"

	"github.com/google/uuid"
)

// Heart links a user to a bookmarked store.
type Heart struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:hearts_user_id_idx;uniqueIndex:hearts_user_store_key"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index:hearts_store_id_idx;uniqueIndex:hearts_user_store_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
