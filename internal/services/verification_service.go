package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
	"github.com/kperez42/Celestia-sub000/internal/storage"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrVerificationPending  = errors.New("a verification is already in progress")
)

// VerificationService handles identity-verification submissions. The photo
// goes to blob storage, the record tracks provider progress, and the
// face-match provider reports the outcome through the webhook handler.
type VerificationService struct {
	db       *gorm.DB
	blobs    storage.BlobStorage
	notifier notify.Dispatcher
}

func NewVerificationService(db *gorm.DB, blobs storage.BlobStorage, notifier notify.Dispatcher) *VerificationService {
	return &VerificationService{db: db, blobs: blobs, notifier: notifier}
}

// Submit uploads the pose photo and creates a pending verification. Only
// one verification may be in flight per account.
func (s *VerificationService) Submit(ctx context.Context, accountID uuid.UUID, photo io.Reader, contentType string) (*models.Verification, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	var inflight int64
	s.db.Model(&models.Verification{}).
		Where("account_id = ? AND status IN ?", accountID,
			[]models.VerificationStatus{models.VerificationStatusPending, models.VerificationStatusProcessing}).
		Count(&inflight)
	if inflight > 0 {
		return nil, ErrVerificationPending
	}

	id := uuid.New()
	key := fmt.Sprintf("verifications/%s/%s.jpg", accountID, id)
	url, err := s.blobs.Upload(ctx, key, photo, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store verification photo: %w", err)
	}

	verification := models.Verification{
		ID:        id,
		AccountID: accountID,
		PhotoURL:  url,
		Status:    models.VerificationStatusPending,
	}
	if err := s.db.Create(&verification).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification: %w", err)
	}
	return &verification, nil
}

// Latest returns the account's most recent verification, for the client's
// status polling.
func (s *VerificationService) Latest(accountID uuid.UUID) (*models.Verification, error) {
	var verification models.Verification
	err := s.db.Where("account_id = ?", accountID).
		Order("created_at DESC").First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to load verification: %w", err)
	}
	return &verification, nil
}

// UpdateProgress records the provider's progress callback while the match
// is still running.
func (s *VerificationService) UpdateProgress(id uuid.UUID, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	result := s.db.Model(&models.Verification{}).
		Where("id = ? AND status IN ?", id,
			[]models.VerificationStatus{models.VerificationStatusPending, models.VerificationStatusProcessing}).
		Updates(map[string]interface{}{
			"status":   models.VerificationStatusProcessing,
			"progress": progress,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update verification progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}

// Complete records the provider's final verdict. Approval marks the profile
// verified; either way the user is notified best-effort after commit.
func (s *VerificationService) Complete(id uuid.UUID, approved bool, failureReason string) error {
	var verification models.Verification
	if err := s.db.First(&verification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVerificationNotFound
		}
		return fmt.Errorf("failed to load verification: %w", err)
	}

	status := models.VerificationStatusFailed
	if approved {
		status = models.VerificationStatusApproved
		failureReason = ""
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":         status,
			"progress":       100,
			"failure_reason": failureReason,
		}
		if err := tx.Model(&verification).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to complete verification: %w", err)
		}
		if approved {
			if err := tx.Model(&models.Account{}).
				Where("id = ?", verification.AccountID).
				Update("is_verified", true).Error; err != nil {
				return fmt.Errorf("failed to mark account verified: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	payload := map[string]string{"status": string(status)}
	if failureReason != "" {
		payload["reason"] = failureReason
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.notifier.Notify(ctx, verification.AccountID, notify.KindVerificationResult, payload); err != nil {
		// Outcome is already committed; delivery is best-effort.
		slog.Error("verification notification failed", "user_id", verification.AccountID, "error", err)
	}
	return nil
}
