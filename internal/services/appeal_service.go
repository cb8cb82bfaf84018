package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

// AppealService handles ban/suspension contests. Intake enforces the
// minimum message length and at-most-one-pending-appeal rule; approving an
// appeal reinstates the account.
type AppealService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewAppealService(db *gorm.DB, moderation *ModerationService) *AppealService {
	return &AppealService{db: db, moderation: moderation}
}

// SubmitAppeal accepts an appeal only from a banned or suspended account,
// with a message of at least MinAppealMessageLen characters, and only when
// no pending appeal of the same type exists for the user.
func (s *AppealService) SubmitAppeal(userID uuid.UUID, message string) (*models.Appeal, error) {
	// Counted in runes so the limit matches the client-side character count.
	if utf8.RuneCountInString(strings.TrimSpace(message)) < models.MinAppealMessageLen {
		return nil, ErrAppealTooShort
	}

	account, err := s.moderation.getAccount(s.db, userID)
	if err != nil {
		return nil, err
	}
	if !account.Sanctioned() {
		return nil, ErrAppealNotEligible
	}

	appealType := models.AppealTypeSuspension
	originalReason := account.ProfileStatusReason
	if account.ProfileStatus == models.ProfileStatusBanned {
		appealType = models.AppealTypeBan
		originalReason = account.BanReason
	}

	// Lookup-before-insert: the uniqueness of a pending appeal per user and
	// sanction type is enforced here, not by a database constraint.
	var existing models.Appeal
	err = s.db.Where("user_id = ? AND type = ? AND status = ?",
		userID, appealType, models.AppealStatusPending).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateAppeal
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing appeals: %w", err)
	}

	appeal := models.Appeal{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           appealType,
		OriginalReason: originalReason,
		AppealMessage:  strings.TrimSpace(message),
		Status:         models.AppealStatusPending,
	}
	if err := s.db.Create(&appeal).Error; err != nil {
		return nil, fmt.Errorf("failed to create appeal: %w", err)
	}
	return &appeal, nil
}

func (s *AppealService) ListAppeals(status models.AppealStatus, limit, offset int) ([]models.Appeal, int64, error) {
	var appeals []models.Appeal
	var total int64

	query := s.db.Model(&models.Appeal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&appeals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list appeals: %w", err)
	}
	return appeals, total, nil
}

// ReviewAppeal records the admin's decision. Approval reinstates the
// account; denial leaves the sanction in place.
func (s *AppealService) ReviewAppeal(appealID uuid.UUID, approve bool, note string) (*models.Appeal, error) {
	var appeal models.Appeal
	if err := s.db.First(&appeal, "id = ?", appealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppealNotFound
		}
		return nil, fmt.Errorf("failed to load appeal: %w", err)
	}
	if appeal.Status != models.AppealStatusPending {
		return nil, ErrAppealAlreadyClosed
	}

	status := models.AppealStatusDenied
	if approve {
		status = models.AppealStatusApproved
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if approve {
			account, err := s.moderation.getAccount(tx, appeal.UserID)
			if err != nil {
				return err
			}
			if account.Sanctioned() {
				if err := s.moderation.reinstateTx(tx, account); err != nil {
					return err
				}
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":      status,
			"review_note": note,
			"reviewed_at": now,
		}
		if err := tx.Model(&appeal).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to review appeal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approve {
		s.moderation.dispatch(appeal.UserID, notify.KindReinstated, map[string]string{
			"message": "Your appeal was approved and your account has been reinstated.",
		})
	}
	return &appeal, nil
}
