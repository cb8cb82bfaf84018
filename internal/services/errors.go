package services

import "errors"

// Lifecycle error taxonomy. Not-found and validation errors block the
// mutation entirely; storage failures are wrapped with %w by each service.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrQueueEntryNotFound = errors.New("moderation queue entry not found")
	ErrAppealNotFound     = errors.New("appeal not found")

	// ErrInvalidTransition is returned when an action is attempted from a
	// status that does not permit it, e.g. approving a non-pending account.
	ErrInvalidTransition   = errors.New("action not allowed from current status")
	ErrReportAlreadyClosed = errors.New("report already resolved")
	ErrAppealAlreadyClosed = errors.New("appeal already reviewed")

	ErrUnknownRejectionCode = errors.New("unknown rejection reason code")
	ErrReasonRequired       = errors.New("reason is required")
	ErrInvalidResolution    = errors.New("invalid resolution: must be dismiss, warn, suspend, or ban")
	ErrAppealTooShort       = errors.New("appeal message must be at least 30 characters")
	ErrAppealNotEligible    = errors.New("account is not banned or suspended")
	ErrDuplicateAppeal      = errors.New("a pending appeal already exists for this sanction")
	ErrInvalidScore         = errors.New("suspicion score must be between 0 and 1")

	ErrSelfBlock      = errors.New("cannot block yourself")
	ErrAlreadyBlocked = errors.New("user already blocked")
)
