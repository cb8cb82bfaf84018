package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// QueueKey is the Redis list the push-delivery worker consumes from.
const QueueKey = "celestia:notifications:queue"

type queuedNotification struct {
	UserID     uuid.UUID         `json:"user_id"`
	Kind       Kind              `json:"kind"`
	Payload    map[string]string `json:"payload,omitempty"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// RedisDispatcher enqueues notifications onto a Redis list. The delivery
// worker (APNs/FCM fan-out) runs as a separate process and drains the list.
type RedisDispatcher struct {
	client *redis.Client
}

func NewRedisDispatcher(addr, password string, db int) (*RedisDispatcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisDispatcher{client: client}, nil
}

func (d *RedisDispatcher) Notify(ctx context.Context, userID uuid.UUID, kind Kind, payload map[string]string) error {
	msg := queuedNotification{
		UserID:     userID,
		Kind:       kind,
		Payload:    payload,
		EnqueuedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := d.client.LPush(ctx, QueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}
