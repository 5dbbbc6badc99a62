package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"request-hub/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
)

// Stream entry field names.
const (
	FieldEvent     = "event"
	FieldPayload   = "payload"
	FieldEmittedAt = "emitted_at"
)

// RedisNotifier appends each event to a Redis stream named prefix+channel.
type RedisNotifier struct {
	client redis.UniversalClient
	prefix string
	maxLen int64
	clock  clock.Clock
	logger *slog.Logger
}

func NewRedisNotifier(client redis.UniversalClient, prefix string, maxLen int64, clk clock.Clock, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		prefix: prefix,
		maxLen: maxLen,
		clock:  clk,
		logger: logger,
	}
}

func (n *RedisNotifier) Stream(channel string) string {
	return n.prefix + channel
}

// Send encodes payload as JSON; json.RawMessage payloads are forwarded as is.
func (n *RedisNotifier) Send(ctx context.Context, channel, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	args := &redis.XAddArgs{
		Stream: n.Stream(channel),
		Values: map[string]any{
			FieldEvent:     event,
			FieldPayload:   string(body),
			FieldEmittedAt: n.clock.Now().UTC().Format(time.RFC3339Nano),
		},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	id, err := n.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", args.Stream, err)
	}

	n.logger.Debug("event published",
		slog.String("stream", args.Stream),
		slog.String("event", event),
		slog.String("entry_id", id))
	return nil
}
