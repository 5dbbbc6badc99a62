package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// NotificationJob is a queued outbox entry. Kind carries the event name and Topic the channel.
type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int32
	Status    string
	LastError *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
