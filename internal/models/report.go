package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

// ReportResolution is the admin's verdict on a report. Anything other than
// a dismissal also applies the matching account transition.
type ReportResolution string

const (
	ResolutionDismiss ReportResolution = "dismiss"
	ResolutionWarn    ReportResolution = "warn"
	ResolutionSuspend ReportResolution = "suspend"
	ResolutionBan     ReportResolution = "ban"
)

func (r ReportResolution) Valid() bool {
	switch r {
	case ResolutionDismiss, ResolutionWarn, ResolutionSuspend, ResolutionBan:
		return true
	}
	return false
}

// Report is one user-submitted complaint against another account. It is
// mutated exactly once, from pending to resolved, and is immutable after.
// Invariant: Status == resolved iff Resolution != nil.
type Report struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"reporterId"`
	ReportedUserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"reportedUserId"`
	Reason            string            `gorm:"not null;size:500" json:"reason"`
	AdditionalDetails string            `gorm:"size:2000" json:"additionalDetails,omitempty"`
	Status            ReportStatus      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Resolution        *ReportResolution `gorm:"size:20" json:"resolution,omitempty"`
	ResolutionReason  string            `gorm:"size:1000" json:"resolutionReason,omitempty"`
	CreatedAt         time.Time         `json:"timestamp"`
	ResolvedAt        *time.Time        `json:"resolvedAt,omitempty"`

	Reporter Account `gorm:"foreignKey:ReporterID" json:"-"`
	Reported Account `gorm:"foreignKey:ReportedUserID" json:"-"`
}
