package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusProcessing VerificationStatus = "processing"
	VerificationStatusApproved   VerificationStatus = "approved"
	VerificationStatusFailed     VerificationStatus = "failed"
)

// Verification is one identity-verification submission: the user uploads a
// pose photo, the face-match provider processes it asynchronously and
// reports the outcome back through the provider webhook.
type Verification struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"userId"`
	PhotoURL      string             `gorm:"not null;size:1000" json:"photoUrl"`
	Status        VerificationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Progress      int                `gorm:"default:0" json:"progress"`
	FailureReason string             `gorm:"size:500" json:"failureReason,omitempty"`
	CreatedAt     time.Time          `json:"submittedAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}
