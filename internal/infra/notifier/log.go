package notifier

import (
	"context"
	"log/slog"
)

// LogNotifier only records events. It backs local runs without Redis or an outbox.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, channel, event string, payload any) error {
	n.logger.InfoContext(ctx, "event emitted",
		slog.String("channel", channel),
		slog.String("event", event),
		slog.Any("payload", payload))
	return nil
}
