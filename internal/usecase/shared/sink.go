package shared

import "context"

// Sink is a Notifier bound to one logical channel.
type Sink struct {
	Channel  string
	Notifier Notifier
}

func NewSink(channel string, notifier Notifier) Sink {
	return Sink{Channel: channel, Notifier: notifier}
}

func (s Sink) Emit(ctx context.Context, event string, payload any) error {
	return s.Notifier.Send(ctx, s.Channel, event, payload)
}

// Sinks groups the downstream channels the request lifecycle writes to.
type Sinks struct {
	Conversation Sink
	Audit        Sink
}
