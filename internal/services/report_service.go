package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

// ReportService owns the report lifecycle: a report is created pending and
// resolved exactly once. Resolutions other than dismiss also apply the
// matching account transition; report and account are updated in one
// transaction, so a failed account transition leaves the report pending.
type ReportService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewReportService(db *gorm.DB, moderation *ModerationService) *ReportService {
	return &ReportService{db: db, moderation: moderation}
}

type CreateReportInput struct {
	ReportedUserID    uuid.UUID
	Reason            string
	AdditionalDetails string
}

func (s *ReportService) CreateReport(reporterID uuid.UUID, in CreateReportInput) (*models.Report, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, ErrReasonRequired
	}
	if _, err := s.moderation.getAccount(s.db, in.ReportedUserID); err != nil {
		return nil, err
	}

	report := models.Report{
		ID:                uuid.New(),
		ReporterID:        reporterID,
		ReportedUserID:    in.ReportedUserID,
		Reason:            in.Reason,
		AdditionalDetails: in.AdditionalDetails,
		Status:            models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReportService) ListReports(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// ResolveReport applies the admin's verdict. The report row and any account
// mutation commit together or not at all; the reported user's notification
// goes out only after commit.
func (s *ReportService) ResolveReport(reportID uuid.UUID, resolution models.ReportResolution, reason string) (*models.Report, error) {
	if !resolution.Valid() {
		return nil, ErrInvalidResolution
	}
	if resolution != models.ResolutionDismiss && strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	var report models.Report
	var reported *models.Account

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return fmt.Errorf("failed to load report: %w", err)
		}
		if report.Status != models.ReportStatusPending {
			return ErrReportAlreadyClosed
		}

		if resolution != models.ResolutionDismiss {
			account, err := s.moderation.getAccount(tx, report.ReportedUserID)
			if err != nil {
				return err
			}
			reported = account

			switch resolution {
			case models.ResolutionWarn:
				if err := s.moderation.warnTx(tx, account, reason, report.ID.String()); err != nil {
					return err
				}
			case models.ResolutionSuspend:
				if err := s.moderation.suspendTx(tx, account, reason, DefaultSuspensionDays); err != nil {
					return err
				}
			case models.ResolutionBan:
				if err := s.moderation.banTx(tx, account, reason); err != nil {
					return err
				}
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":            models.ReportStatusResolved,
			"resolution":        resolution,
			"resolution_reason": reason,
			"resolved_at":       now,
		}
		if err := tx.Model(&report).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to resolve report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reported != nil {
		switch resolution {
		case models.ResolutionWarn:
			s.moderation.dispatch(reported.ID, notify.KindWarned, map[string]string{"reason": reason})
		case models.ResolutionSuspend:
			payload := map[string]string{"reason": reason}
			if reported.SuspendedUntil != nil {
				payload["suspended_until"] = reported.SuspendedUntil.UTC().Format(time.RFC3339)
			}
			s.moderation.dispatch(reported.ID, notify.KindSuspended, payload)
		case models.ResolutionBan:
			s.moderation.dispatch(reported.ID, notify.KindBanned, map[string]string{"reason": reason})
		}
	}
	return &report, nil
}
