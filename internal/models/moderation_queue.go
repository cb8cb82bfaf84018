package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ModerationQueueEntry is an automatically flagged account awaiting human
// review. Entries are advisory: dismissing one mutates nothing else, and
// banning the account purges every entry that references it.
type ModerationQueueEntry struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"reportedUserId"`
	SuspicionScore float64        `gorm:"not null" json:"suspicionScore"`
	Indicators     datatypes.JSON `json:"indicators"`
	CreatedAt      time.Time      `json:"timestamp"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (ModerationQueueEntry) TableName() string {
	return "moderation_queue"
}
