package models

import (
	"time"

	"github.com/google/uuid"
)

// Warning is one moderation warning issued against an account. Warnings
// never change the account's status; they only accumulate.
type Warning struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Reason    string    `gorm:"not null;size:1000" json:"reason"`
	IssuedBy  string    `gorm:"size:36" json:"-"`
	CreatedAt time.Time `json:"timestamp"`
}
