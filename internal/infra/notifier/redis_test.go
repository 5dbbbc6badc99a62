//go:build unit

package notifier_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"request-hub/internal/infra/notifier"
	"request-hub/internal/pkg/clock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRedisNotifier(t *testing.T, maxLen int64) (*notifier.RedisNotifier, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return notifier.NewRedisNotifier(client, "notify:", maxLen, clock.NewMockClock(fixedNow), discardLogger()), client, s
}

func TestRedisNotifier_Send(t *testing.T) {
	n, client, _ := setupRedisNotifier(t, 0)
	ctx := context.Background()

	err := n.Send(ctx, "conversation-creation", "create-conversation", map[string]string{"user1": "alice", "user2": "bob"})
	require.NoError(t, err)

	entries, err := client.XRange(ctx, "notify:conversation-creation", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	assert.Equal(t, "create-conversation", values[notifier.FieldEvent])
	assert.Equal(t, "2024-06-01T09:30:00Z", values[notifier.FieldEmittedAt])

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(values[notifier.FieldPayload].(string)), &payload))
	assert.Equal(t, map[string]string{"user1": "alice", "user2": "bob"}, payload)
}

func TestRedisNotifier_RawPayloadIsForwarded(t *testing.T) {
	n, client, _ := setupRedisNotifier(t, 0)
	ctx := context.Background()

	raw := json.RawMessage(`{"requestId":"r-1","rejectedBy":"bob","timestamp":"2024-06-01T09:30:00Z"}`)
	require.NoError(t, n.Send(ctx, "audit", "audit-log", raw))

	entries, err := client.XRange(ctx, "notify:audit", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.JSONEq(t, string(raw), entries[0].Values[notifier.FieldPayload].(string))
}

func TestRedisNotifier_ChannelsAreSeparateStreams(t *testing.T) {
	n, client, _ := setupRedisNotifier(t, 0)
	ctx := context.Background()

	require.NoError(t, n.Send(ctx, "audit", "audit-log", map[string]string{}))
	require.NoError(t, n.Send(ctx, "audit", "audit-log", map[string]string{}))
	require.NoError(t, n.Send(ctx, "conversation-creation", "create-conversation", map[string]string{}))

	assert.Equal(t, int64(2), client.XLen(ctx, "notify:audit").Val())
	assert.Equal(t, int64(1), client.XLen(ctx, "notify:conversation-creation").Val())
}

func TestRedisNotifier_Errors(t *testing.T) {
	t.Run("unencodable payload", func(t *testing.T) {
		n, _, _ := setupRedisNotifier(t, 0)

		err := n.Send(context.Background(), "audit", "audit-log", make(chan int))
		assert.Error(t, err)
	})

	t.Run("redis unavailable", func(t *testing.T) {
		n, _, s := setupRedisNotifier(t, 0)
		s.Close()

		err := n.Send(context.Background(), "audit", "audit-log", map[string]string{})
		assert.Error(t, err)
	})
}
