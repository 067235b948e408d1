package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity.
type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email                string     `gorm:"type:text;not null;uniqueIndex"`
	Name                 string     `gorm:"column:name;not null"`
	PasswordHash         string     `gorm:"column:password_hash;not null"`
	Photo                *string    `gorm:"column:photo"`
	ResetPasswordToken   *string    `gorm:"column:reset_password_token"`
	ResetPasswordExpires *time.Time `gorm:"column:reset_password_expires"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
