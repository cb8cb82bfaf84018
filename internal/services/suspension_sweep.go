package services

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

// StartSuspensionSweep runs an hourly goroutine that reinstates suspended
// accounts whose suspension window has elapsed.
func (s *ModerationService) StartSuspensionSweep(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := s.SweepExpiredSuspensions(); err != nil {
					slog.Error("suspension sweep failed", "error", err)
				} else if n > 0 {
					slog.Info("suspension sweep completed", "reinstated", n)
				}
			case <-done:
				return
			}
		}
	}()
}

// SweepExpiredSuspensions reinstates every account whose suspendedUntil is
// in the past and returns how many were reinstated.
func (s *ModerationService) SweepExpiredSuspensions() (int, error) {
	var expired []models.Account
	err := s.db.
		Where("profile_status = ? AND suspended_until IS NOT NULL AND suspended_until < ?",
			models.ProfileStatusSuspended, time.Now().UTC()).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load expired suspensions: %w", err)
	}

	reinstated := 0
	for i := range expired {
		account := &expired[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.reinstateTx(tx, account)
		})
		if err != nil {
			slog.Error("failed to reinstate expired suspension",
				"user_id", account.ID, "error", err)
			continue
		}
		reinstated++
		s.dispatch(account.ID, notify.KindReinstated, map[string]string{
			"message": "Your suspension has ended and your account is active again.",
		})
	}
	return reinstated, nil
}
