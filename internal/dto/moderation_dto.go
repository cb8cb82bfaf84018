package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	ReportedUserID    uuid.UUID `json:"reportedUserId" validate:"required"`
	Reason            string    `json:"reason" validate:"required,max=500"`
	AdditionalDetails string    `json:"additionalDetails" validate:"max=2000"`
}

type ResolveReportRequest struct {
	Resolution       string `json:"resolution" validate:"required,oneof=dismiss warn suspend ban"`
	ResolutionReason string `json:"resolutionReason" validate:"max=1000"`
}

type RejectAccountRequest struct {
	Code      string `json:"code" validate:"required"`
	AdminNote string `json:"adminNote" validate:"max=1000"`
}

type WarnAccountRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type SuspendAccountRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
	Days   int    `json:"days" validate:"min=0,max=365"`
}

type BanAccountRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type EnqueueRequest struct {
	AccountID      uuid.UUID `json:"reportedUserId" validate:"required"`
	SuspicionScore float64   `json:"suspicionScore" validate:"min=0,max=1"`
	Indicators     []string  `json:"indicators"`
}

type BlockUserRequest struct {
	BlockedID uuid.UUID `json:"blocked_id" validate:"required"`
}

// DashboardStats aggregates the four admin queues.
type DashboardStats struct {
	PendingAccounts int64 `json:"pendingAccounts"`
	PendingReports  int64 `json:"pendingReports"`
	QueueEntries    int64 `json:"queueEntries"`
	PendingAppeals  int64 `json:"pendingAppeals"`
}
