package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

// DefaultSuspensionDays is used when a suspension request does not specify
// a duration.
const DefaultSuspensionDays = 7

// ModerationService owns the account status state machine: the transitions
// between pending, active, rejected, suspended and banned, their side
// effects, and the notification each one produces. Status changes are
// committed first; notification dispatch is best-effort afterwards.
type ModerationService struct {
	db       *gorm.DB
	notifier notify.Dispatcher
}

func NewModerationService(db *gorm.DB, notifier notify.Dispatcher) *ModerationService {
	return &ModerationService{db: db, notifier: notifier}
}

func (s *ModerationService) getAccount(tx *gorm.DB, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := tx.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &account, nil
}

// ApproveAccount moves a pending account to active and makes it visible.
func (s *ModerationService) ApproveAccount(id uuid.UUID) (*models.Account, error) {
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return nil, err
	}
	if account.ProfileStatus != models.ProfileStatusPending {
		return nil, fmt.Errorf("cannot approve %s account: %w", account.ProfileStatus, ErrInvalidTransition)
	}

	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusActive,
		"profile_status_reason": "",
		"visible":               true,
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to approve account: %w", err)
	}

	s.dispatch(id, notify.KindApproved, map[string]string{
		"message": "Your profile has been approved. Welcome to Celestia!",
	})
	return account, nil
}

// RejectAccount moves a pending account to rejected with a canonical reason
// drawn from the fixed catalog. An optional admin note is appended to the
// fix instructions, never substituted for them.
func (s *ModerationService) RejectAccount(id uuid.UUID, code, adminNote string) (*models.Account, error) {
	reason, ok := RejectionReasonFor(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRejectionCode, code)
	}

	account, err := s.getAccount(s.db, id)
	if err != nil {
		return nil, err
	}
	if account.ProfileStatus != models.ProfileStatusPending {
		return nil, fmt.Errorf("cannot reject %s account: %w", account.ProfileStatus, ErrInvalidTransition)
	}

	instructions := AppendAdminNote(reason.FixInstructions, adminNote)
	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusRejected,
		"profile_status_reason": reason.Message,
		"rejection_code":        reason.Code,
		"fix_instructions":      instructions,
		"visible":               false,
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to reject account: %w", err)
	}

	s.dispatch(id, notify.KindRejected, map[string]string{
		"message":          reason.Message,
		"fix_instructions": instructions,
	})
	return account, nil
}

// RetryReview is the user-triggered transition from rejected back to
// pending: rejection fields are cleared and the profile re-enters review.
func (s *ModerationService) RetryReview(id uuid.UUID) error {
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return err
	}
	if account.ProfileStatus != models.ProfileStatusRejected {
		return fmt.Errorf("cannot resubmit %s account: %w", account.ProfileStatus, ErrInvalidTransition)
	}

	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusPending,
		"profile_status_reason": "",
		"rejection_code":        "",
		"fix_instructions":      "",
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to resubmit account: %w", err)
	}
	return nil
}

// WarnAccount records a warning without changing the account's status.
func (s *ModerationService) WarnAccount(id uuid.UUID, reason, issuedBy string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.warnTx(tx, account, reason, issuedBy)
	})
	if err != nil {
		return err
	}

	s.dispatch(id, notify.KindWarned, map[string]string{"reason": reason})
	return nil
}

func (s *ModerationService) warnTx(tx *gorm.DB, account *models.Account, reason, issuedBy string) error {
	warning := models.Warning{
		ID:        uuid.New(),
		AccountID: account.ID,
		Reason:    reason,
		IssuedBy:  issuedBy,
	}
	if err := tx.Create(&warning).Error; err != nil {
		return fmt.Errorf("failed to record warning: %w", err)
	}
	if err := tx.Model(account).
		UpdateColumn("warning_count", gorm.Expr("warning_count + 1")).Error; err != nil {
		return fmt.Errorf("failed to increment warning count: %w", err)
	}
	return nil
}

// SuspendAccount suspends an account for the given number of days
// (DefaultSuspensionDays when days <= 0). Expiry is handled by the
// suspension sweep, not here.
func (s *ModerationService) SuspendAccount(id uuid.UUID, reason string, days int) error {
	if reason == "" {
		return ErrReasonRequired
	}
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.suspendTx(tx, account, reason, days)
	})
	if err != nil {
		return err
	}

	s.dispatch(id, notify.KindSuspended, map[string]string{
		"reason":          reason,
		"suspended_until": account.SuspendedUntil.UTC().Format(time.RFC3339),
	})
	return nil
}

func (s *ModerationService) suspendTx(tx *gorm.DB, account *models.Account, reason string, days int) error {
	if days <= 0 {
		days = DefaultSuspensionDays
	}
	until := time.Now().UTC().AddDate(0, 0, days)
	account.SuspendedUntil = &until

	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusSuspended,
		"profile_status_reason": reason,
		"is_suspended":          true,
		"suspended_until":       until,
		"visible":               false,
	}
	if err := tx.Model(account).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to suspend account: %w", err)
	}
	return nil
}

// BanAccount permanently bans an account and purges every moderation queue
// entry referencing it. Reversible only through an approved appeal.
func (s *ModerationService) BanAccount(id uuid.UUID, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.banTx(tx, account, reason)
	})
	if err != nil {
		return err
	}

	s.dispatch(id, notify.KindBanned, map[string]string{"reason": reason})
	return nil
}

func (s *ModerationService) banTx(tx *gorm.DB, account *models.Account, reason string) error {
	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusBanned,
		"profile_status_reason": reason,
		"is_banned":             true,
		"ban_reason":            reason,
		"is_suspended":          false,
		"suspended_until":       nil,
		"visible":               false,
	}
	if err := tx.Model(account).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to ban account: %w", err)
	}
	if err := tx.Where("account_id = ?", account.ID).
		Delete(&models.ModerationQueueEntry{}).Error; err != nil {
		return fmt.Errorf("failed to purge moderation queue: %w", err)
	}
	return nil
}

// ReinstateAccount lifts a ban or suspension and returns the account to
// active. Reached through appeal approval or suspension expiry.
func (s *ModerationService) ReinstateAccount(id uuid.UUID) error {
	account, err := s.getAccount(s.db, id)
	if err != nil {
		return err
	}
	if !account.Sanctioned() {
		return fmt.Errorf("cannot reinstate %s account: %w", account.ProfileStatus, ErrInvalidTransition)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.reinstateTx(tx, account)
	})
	if err != nil {
		return err
	}

	s.dispatch(id, notify.KindReinstated, map[string]string{
		"message": "Your account has been reinstated.",
	})
	return nil
}

func (s *ModerationService) reinstateTx(tx *gorm.DB, account *models.Account) error {
	updates := map[string]interface{}{
		"profile_status":        models.ProfileStatusActive,
		"profile_status_reason": "",
		"is_banned":             false,
		"ban_reason":            "",
		"is_suspended":          false,
		"suspended_until":       nil,
		"visible":               true,
	}
	if err := tx.Model(account).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to reinstate account: %w", err)
	}
	return nil
}

// ListPendingAccounts returns accounts awaiting profile review, oldest
// first so the queue drains in submission order.
func (s *ModerationService) ListPendingAccounts(limit, offset int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	query := s.db.Model(&models.Account{}).Where("profile_status = ?", models.ProfileStatusPending)
	query.Count(&total)

	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pending accounts: %w", err)
	}
	return accounts, total, nil
}

// DashboardStats loads the four admin queues' sizes concurrently. The
// aggregate is only returned once all four counts complete.
func (s *ModerationService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	var stats dto.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Account{}).
			Where("profile_status = ?", models.ProfileStatusPending).
			Count(&stats.PendingAccounts).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Report{}).
			Where("status = ?", models.ReportStatusPending).
			Count(&stats.PendingReports).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.ModerationQueueEntry{}).
			Count(&stats.QueueEntries).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Appeal{}).
			Where("status = ?", models.AppealStatusPending).
			Count(&stats.PendingAppeals).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return &stats, nil
}

// dispatch sends a lifecycle notification after the state change has been
// committed. Failures are logged and never propagate to the caller.
func (s *ModerationService) dispatch(userID uuid.UUID, kind notify.Kind, payload map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.notifier.Notify(ctx, userID, kind, payload); err != nil {
		slog.Error("notification dispatch failed", "user_id", userID, "kind", string(kind), "error", err)
	}
}
