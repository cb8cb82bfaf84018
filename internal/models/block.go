package models

import (
	"time"

	"github.com/google/uuid"
)

// Block hides one account from another immediately, without waiting for
// moderation review.
type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;index:idx_blocks_pair,unique" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;index:idx_blocks_pair,unique" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	Blocker Account `gorm:"foreignKey:BlockerID" json:"-"`
	Blocked Account `gorm:"foreignKey:BlockedID" json:"-"`
}

func (Block) TableName() string {
	return "blocks"
}
