package models

import (
	"time"

	"github.com/google/uuid"
)

type AppealType string

const (
	AppealTypeBan        AppealType = "ban"
	AppealTypeSuspension AppealType = "suspension"
)

type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusApproved AppealStatus = "approved"
	AppealStatusDenied   AppealStatus = "denied"
)

// MinAppealMessageLen is enforced at submission time.
const MinAppealMessageLen = 30

// Appeal is a user-initiated request to reverse a ban or suspension.
// At most one pending appeal may exist per user per sanction type.
type Appeal struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	Type           AppealType   `gorm:"size:20;not null" json:"type"`
	OriginalReason string       `gorm:"size:1000" json:"originalReason"`
	AppealMessage  string       `gorm:"not null;size:4000" json:"appealMessage"`
	Status         AppealStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewNote     string       `gorm:"size:1000" json:"reviewNote,omitempty"`
	CreatedAt      time.Time    `json:"submittedAt"`
	ReviewedAt     *time.Time   `json:"reviewedAt,omitempty"`

	User Account `gorm:"foreignKey:UserID" json:"-"`
}
