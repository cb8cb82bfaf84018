package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
)

// QueueService manages the moderation queue of automatically flagged
// accounts. Entries are advisory: a reviewer either dismisses one or bans
// the account, which purges its entries as a side effect.
type QueueService struct {
	db *gorm.DB
}

func NewQueueService(db *gorm.DB) *QueueService {
	return &QueueService{db: db}
}

// Enqueue admits an account into the moderation queue with the upstream
// scorer's confidence and indicator tags.
func (s *QueueService) Enqueue(accountID uuid.UUID, score float64, indicators []string) (*models.ModerationQueueEntry, error) {
	if score < 0 || score > 1 {
		return nil, ErrInvalidScore
	}

	var account models.Account
	if err := s.db.First(&account, "id = ?", accountID).Error; err != nil {
		return nil, ErrAccountNotFound
	}

	tags, err := json.Marshal(indicators)
	if err != nil {
		return nil, fmt.Errorf("failed to encode indicators: %w", err)
	}

	entry := models.ModerationQueueEntry{
		ID:             uuid.New(),
		AccountID:      accountID,
		SuspicionScore: score,
		Indicators:     datatypes.JSON(tags),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to enqueue account: %w", err)
	}
	return &entry, nil
}

// List returns queue entries, most suspicious first.
func (s *QueueService) List(limit, offset int) ([]models.ModerationQueueEntry, int64, error) {
	var entries []models.ModerationQueueEntry
	var total int64

	query := s.db.Model(&models.ModerationQueueEntry{})
	query.Count(&total)

	if err := query.Order("suspicion_score DESC, created_at ASC").
		Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list moderation queue: %w", err)
	}
	return entries, total, nil
}

// Dismiss removes a queue entry without touching the account.
func (s *QueueService) Dismiss(entryID uuid.UUID) error {
	result := s.db.Delete(&models.ModerationQueueEntry{}, "id = ?", entryID)
	if result.Error != nil {
		return fmt.Errorf("failed to dismiss queue entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrQueueEntryNotFound
	}
	return nil
}

// CountForAccount reports how many queue entries reference an account.
func (s *QueueService) CountForAccount(accountID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.ModerationQueueEntry{}).
		Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
