package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileStatus is the single source of truth for an account's moderation
// state. The boolean flags on Account (IsBanned, IsSuspended, Visible) are
// derived from it and kept in sync by the moderation service.
type ProfileStatus string

const (
	ProfileStatusPending   ProfileStatus = "pending"
	ProfileStatusActive    ProfileStatus = "active"
	ProfileStatusRejected  ProfileStatus = "rejected"
	ProfileStatusSuspended ProfileStatus = "suspended"
	ProfileStatusBanned    ProfileStatus = "banned"
)

func (s ProfileStatus) Valid() bool {
	switch s {
	case ProfileStatusPending, ProfileStatusActive, ProfileStatusRejected,
		ProfileStatusSuspended, ProfileStatusBanned:
		return true
	}
	return false
}

// Account is a registered user together with its profile and
// moderation-relevant state. New accounts start in pending review.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;default:'user'" json:"role"`
	AppleUserID  *string   `gorm:"size:255;index" json:"-"`
	AuthProvider string    `gorm:"size:50;default:'email'" json:"-"`

	// Profile
	Name       string         `gorm:"size:100" json:"name"`
	Bio        string         `gorm:"size:2000" json:"bio"`
	BirthDate  *time.Time     `json:"birthDate,omitempty"`
	Photos     datatypes.JSON `json:"photos,omitempty"`
	IsVerified bool           `gorm:"default:false" json:"isVerified"`

	// Moderation state. Field names match the mobile client's documents.
	ProfileStatus       ProfileStatus `gorm:"size:20;not null;default:'pending';index" json:"profileStatus"`
	ProfileStatusReason string        `gorm:"size:1000" json:"profileStatusReason,omitempty"`
	RejectionCode       string        `gorm:"size:50" json:"rejectionCode,omitempty"`
	FixInstructions     string        `gorm:"size:2000" json:"fixInstructions,omitempty"`
	Visible             bool          `gorm:"default:false;index" json:"visibility"`
	IsBanned            bool          `gorm:"default:false" json:"isBanned"`
	BanReason           string        `gorm:"size:1000" json:"banReason,omitempty"`
	IsSuspended         bool          `gorm:"default:false" json:"isSuspended"`
	SuspendedUntil      *time.Time    `json:"suspendedUntil,omitempty"`
	WarningCount        int           `gorm:"default:0" json:"warningCount"`
	Warnings            []Warning     `gorm:"foreignKey:AccountID" json:"warnings,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Sanctioned reports whether the account currently carries a ban or
// suspension, i.e. is eligible to file an appeal.
func (a *Account) Sanctioned() bool {
	return a.ProfileStatus == ProfileStatusBanned || a.ProfileStatus == ProfileStatusSuspended
}

// VisibleProfiles is a GORM scope limiting queries to accounts that may
// appear in discovery: active and not soft-deleted.
func VisibleProfiles(db *gorm.DB) *gorm.DB {
	return db.Where("visible = ? AND profile_status = ?", true, ProfileStatusActive)
}
