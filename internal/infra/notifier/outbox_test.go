//go:build unit

package notifier_test

import (
	"context"
	"testing"

	"request-hub/internal/infra/notifier"
	"request-hub/internal/pkg/clock"
	sharedmock "request-hub/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOutboxNotifier_Send(t *testing.T) {
	t.Run("queues the encoded payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := sharedmock.NewMockNotificationJobRepository(ctrl)
		jobs.EXPECT().
			CreateJob(gomock.Any(), gomock.Nil(), "create-conversation", "conversation-creation",
				[]byte(`{"user1":"alice","user2":"bob"}`), fixedNow).
			Return(nil)

		n := notifier.NewOutboxNotifier(jobs, nil, clock.NewMockClock(fixedNow))

		err := n.Send(context.Background(), "conversation-creation", "create-conversation",
			struct {
				User1 string `json:"user1"`
				User2 string `json:"user2"`
			}{"alice", "bob"})
		assert.NoError(t, err)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		jobs := sharedmock.NewMockNotificationJobRepository(ctrl)
		jobs.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		n := notifier.NewOutboxNotifier(jobs, nil, clock.NewMockClock(fixedNow))

		err := n.Send(context.Background(), "audit", "audit-log", map[string]string{})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
