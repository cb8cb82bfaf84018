package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogDispatcher writes notifications to the structured log instead of a
// delivery queue. Used when no Redis address is configured (local dev).
type LogDispatcher struct{}

func (LogDispatcher) Notify(_ context.Context, userID uuid.UUID, kind Kind, payload map[string]string) error {
	slog.Info("notification dispatched", "user_id", userID, "kind", string(kind), "payload", payload)
	return nil
}
