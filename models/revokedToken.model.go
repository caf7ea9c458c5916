package models

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken holds refresh tokens surrendered at logout. Refresh checks
// this table; expired rows are purged by the cleanup job.
type RevokedToken struct {
	gorm.Model
	JTI       string    `json:"jti" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
