package notify

import (
	"context"

	"github.com/google/uuid"
)

// Kind identifies which lifecycle transition a notification is about.
type Kind string

const (
	KindApproved           Kind = "approved"
	KindRejected           Kind = "rejected"
	KindWarned             Kind = "warned"
	KindSuspended          Kind = "suspended"
	KindBanned             Kind = "banned"
	KindReinstated         Kind = "reinstated"
	KindVerificationResult Kind = "verification_result"
)

// Dispatcher delivers a push/email notification for a lifecycle transition.
// Delivery is best-effort: callers commit state first and only log a
// dispatch failure, never roll back.
type Dispatcher interface {
	Notify(ctx context.Context, userID uuid.UUID, kind Kind, payload map[string]string) error
}
