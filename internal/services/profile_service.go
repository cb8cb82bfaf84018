package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
)

// ProfileService covers the member-facing profile surface: own profile,
// edits, and discovery of visible profiles. Every text edit runs through
// the screening service.
type ProfileService struct {
	db        *gorm.DB
	screening *ScreeningService
}

func NewProfileService(db *gorm.DB, screening *ScreeningService) *ProfileService {
	return &ProfileService{db: db, screening: screening}
}

func (s *ProfileService) GetAccount(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.Preload("Warnings").First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

type UpdateProfileInput struct {
	Name      *string
	Bio       *string
	BirthDate *time.Time
	Photos    []string
}

// UpdateProfile applies the user's edits and re-screens the profile text.
func (s *ProfileService) UpdateProfile(id uuid.UUID, in UpdateProfileInput) (*models.Account, error) {
	account, err := s.GetAccount(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
		account.Name = *in.Name
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
		account.Bio = *in.Bio
	}
	if in.BirthDate != nil {
		updates["birth_date"] = *in.BirthDate
	}
	if in.Photos != nil {
		encoded, err := json.Marshal(in.Photos)
		if err != nil {
			return nil, fmt.Errorf("failed to encode photos: %w", err)
		}
		updates["photos"] = datatypes.JSON(encoded)
		account.Photos = datatypes.JSON(encoded)
	}
	if len(updates) == 0 {
		return account, nil
	}

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if in.Name != nil || in.Bio != nil {
		s.screening.ScreenProfile(account)
	}
	return account, nil
}

// BrowseProfiles returns active, visible profiles for discovery, excluding
// the requesting user and anyone they blocked or were blocked by.
func (s *ProfileService) BrowseProfiles(viewerID uuid.UUID, limit, offset int) ([]models.Account, error) {
	blocked := s.db.Model(&models.Block{}).
		Select("blocked_id").Where("blocker_id = ?", viewerID)
	blockedBy := s.db.Model(&models.Block{}).
		Select("blocker_id").Where("blocked_id = ?", viewerID)

	var accounts []models.Account
	err := s.db.Scopes(models.VisibleProfiles).
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", blocked).
		Where("id NOT IN (?)", blockedBy).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to browse profiles: %w", err)
	}
	return accounts, nil
}

// BlockUser hides blockedID from blockerID immediately.
func (s *ProfileService) BlockUser(blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	var existing models.Block
	err := s.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyBlocked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing block: %w", err)
	}

	block := models.Block{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	if err := s.db.Create(&block).Error; err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

func (s *ProfileService) UnblockUser(blockerID, blockedID uuid.UUID) error {
	return s.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}
