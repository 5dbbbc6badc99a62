//go:build unit

package request_test

import (
	"strings"
	"testing"

	"request-hub/internal/domain/request"
	"request-hub/internal/pkg/errs"
	"request-hub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RequestBuilder)
	errIs  error
}

func TestDraft(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRequestBuilder().BuildDraft()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, uuid.Nil, actual.ID())
		assert.Equal(t, "alice", actual.Sender())
		assert.Equal(t, "bob", actual.Receiver())
		assert.Equal(t, request.StatusPending, actual.Status())
		assert.True(t, actual.IsPending())
	})

	t.Run("identity validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty sender",
				mutate: func(b *builder.RequestBuilder) { b.WithSender("") },
				errIs:  request.ErrEmptyIdentity,
			},
			{
				name:   "whitespace receiver",
				mutate: func(b *builder.RequestBuilder) { b.WithReceiver("   ") },
				errIs:  request.ErrEmptyIdentity,
			},
			{
				name:   "receiver at maximum length",
				mutate: func(b *builder.RequestBuilder) { b.WithReceiver(strings.Repeat("b", request.MaxIdentityLength)) },
			},
			{
				name:   "receiver exceeds maximum length",
				mutate: func(b *builder.RequestBuilder) { b.WithReceiver(strings.Repeat("b", request.MaxIdentityLength+1)) },
				errIs:  request.ErrIdentityTooLong,
			},
			{
				name:   "request to self",
				mutate: func(b *builder.RequestBuilder) { b.WithReceiver("alice") },
				errIs:  request.ErrSelfRequest,
			},
			{
				name:   "request to self after trimming",
				mutate: func(b *builder.RequestBuilder) { b.WithReceiver("  alice ") },
				errIs:  request.ErrSelfRequest,
			},
		})
	})

	t.Run("identity trimming", func(t *testing.T) {
		actual, err := request.Draft(" alice ", "\tbob\n")
		require.NoError(t, err)
		assert.Equal(t, "alice", actual.Sender())
		assert.Equal(t, "bob", actual.Receiver())
	})

	t.Run("validation errors are invalid arguments", func(t *testing.T) {
		_, err := request.Draft("alice", "")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidArgument))
	})
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		current request.Status
		next    request.Status
		errIs   error
		markIs  error
	}{
		{name: "pending to accepted", current: request.StatusPending, next: request.StatusAccepted},
		{name: "pending to rejected", current: request.StatusPending, next: request.StatusRejected},
		{
			name:    "pending to pending",
			current: request.StatusPending,
			next:    request.StatusPending,
			errIs:   request.ErrInvalidTargetStatus,
			markIs:  errs.ErrInvalidArgument,
		},
		{
			name:    "unknown status",
			current: request.StatusPending,
			next:    request.Status("maybe"),
			errIs:   request.ErrInvalidStatus,
			markIs:  errs.ErrInvalidArgument,
		},
		{
			name:    "accepted is terminal",
			current: request.StatusAccepted,
			next:    request.StatusRejected,
			errIs:   request.ErrNotPending,
			markIs:  errs.ErrRequestAlreadyResolved,
		},
		{
			name:    "rejected is terminal",
			current: request.StatusRejected,
			next:    request.StatusAccepted,
			errIs:   request.ErrNotPending,
			markIs:  errs.ErrRequestAlreadyResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := builder.NewRequestBuilder().WithStatus(tt.current).BuildDomain()

			err := r.CheckTransition(tt.next)

			if tt.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
			assert.True(t, errs.Is(err, tt.markIs))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "rejected"} {
		got, err := request.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}

	_, err := request.ParseStatus("Accepted")
	assert.ErrorIs(t, err, request.ErrInvalidStatus)

	_, err = request.ParseTargetStatus("pending")
	assert.ErrorIs(t, err, request.ErrInvalidTargetStatus)

	got, err := request.ParseTargetStatus("rejected")
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, got)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewRequestBuilder().With(c.mutate).BuildDraft()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
