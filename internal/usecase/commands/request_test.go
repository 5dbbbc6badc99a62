//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"request-hub/internal/domain/request"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/pkg/errs"
	"request-hub/internal/usecase/commands"
	"request-hub/internal/usecase/shared"
	"request-hub/tests/common/builder"
	sharedmock "request-hub/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	conversationChannel = "conversation-creation"
	auditChannel        = "audit"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 123456789, time.UTC)

type RequestCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	repo         *sharedmock.MockRequestRepository
	identities   *sharedmock.MockCredentialResolver
	conversation *sharedmock.MockNotifier
	audit        *sharedmock.MockNotifier
	uc           commands.RequestCommands
}

func (s *RequestCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = sharedmock.NewMockRequestRepository(s.mockCtrl)
	s.identities = sharedmock.NewMockCredentialResolver(s.mockCtrl)
	s.conversation = sharedmock.NewMockNotifier(s.mockCtrl)
	s.audit = sharedmock.NewMockNotifier(s.mockCtrl)

	sinks := shared.Sinks{
		Conversation: shared.NewSink(conversationChannel, s.conversation),
		Audit:        shared.NewSink(auditChannel, s.audit),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uc = commands.NewRequestUseCase(s.repo, s.identities, sinks, clock.NewMockClock(fixedNow), logger, time.Second)
}

func (s *RequestCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRequestCommandsSuite(t *testing.T) {
	suite.Run(t, new(RequestCommandsTestSuite))
}

// ================================================================================
// SendRequest
// ================================================================================

func (s *RequestCommandsTestSuite) TestSendRequest() {
	ctx := context.Background()

	s.Run("success: creates a pending request", func() {
		created := builder.NewRequestBuilder().BuildDomain()
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)
		s.repo.EXPECT().FindPending(gomock.Any(), "alice", "bob").Return(nil, nil)
		s.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, draft *request.Request) (*request.Request, error) {
				s.Equal("alice", draft.Sender())
				s.Equal("bob", draft.Receiver())
				s.Equal(request.StatusPending, draft.Status())
				return created, nil
			})

		got, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: "bob"})

		s.Require().NoError(err)
		s.Equal(created.ID(), got.ID())
		s.Equal(request.StatusPending, got.Status())
	})

	s.Run("failure: duplicate pending request", func() {
		existing := builder.NewRequestBuilder().BuildDomain()
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)
		s.repo.EXPECT().FindPending(gomock.Any(), "alice", "bob").Return(existing, nil)

		got, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: "bob"})

		s.Nil(got)
		s.True(errs.Is(err, errs.ErrDuplicatePendingRequest))
	})

	s.Run("failure: store reports duplicate on insert", func() {
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)
		s.repo.EXPECT().FindPending(gomock.Any(), "alice", "bob").Return(nil, nil)
		s.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("unique violation"), errs.ErrDuplicatePendingRequest))

		_, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: "bob"})

		s.True(errs.Is(err, errs.ErrDuplicatePendingRequest))
	})

	s.Run("failure: unauthenticated", func() {
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "").
			Return("", errs.Mark(errs.New("credential is missing"), errs.ErrUnauthenticated))

		_, err := s.uc.SendRequest(ctx, "", commands.SendRequestInput{Receiver: "bob"})

		s.True(errs.Is(err, errs.ErrUnauthenticated))
	})

	s.Run("failure: empty receiver", func() {
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)

		_, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: " "})

		s.True(errs.Is(err, errs.ErrInvalidArgument))
	})

	s.Run("failure: request to self", func() {
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)

		_, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: "alice"})

		s.ErrorIs(err, request.ErrSelfRequest)
		s.True(errs.Is(err, errs.ErrInvalidArgument))
	})

	s.Run("failure: store error", func() {
		storeErr := errs.Mark(errs.New("db down"), errs.ErrStoreFailure)
		s.identities.EXPECT().ResolveIdentity(gomock.Any(), "token-alice").Return("alice", nil)
		s.repo.EXPECT().FindPending(gomock.Any(), "alice", "bob").Return(nil, storeErr)

		_, err := s.uc.SendRequest(ctx, "token-alice", commands.SendRequestInput{Receiver: "bob"})

		s.True(errs.Is(err, errs.ErrStoreFailure))
	})
}

// ================================================================================
// AcceptRequest
// ================================================================================

func (s *RequestCommandsTestSuite) TestAcceptRequest() {
	ctx := context.Background()
	id := uuid.New()

	s.Run("success: accepted emits one create-conversation", func() {
		updated := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusAccepted).BuildDomain()
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusAccepted).Return(updated, nil)
		s.conversation.EXPECT().
			Send(gomock.Any(), conversationChannel, commands.EventCreateConversation,
				commands.CreateConversationPayload{User1: "alice", User2: "bob"}).
			Return(nil).Times(1)

		got, err := s.uc.AcceptRequest(ctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "accepted"})

		s.Require().NoError(err)
		s.Equal(request.StatusAccepted, got.Status())
	})

	s.Run("success: rejected through accept emits nothing", func() {
		updated := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusRejected).BuildDomain()
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusRejected).Return(updated, nil)
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		s.audit.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := s.uc.AcceptRequest(ctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "rejected"})

		s.Require().NoError(err)
		s.Equal(request.StatusRejected, got.Status())
	})

	s.Run("success: sink failure does not fail the operation", func() {
		updated := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusAccepted).BuildDomain()
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusAccepted).Return(updated, nil)
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.New("broker unavailable"))

		got, err := s.uc.AcceptRequest(ctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "accepted"})

		s.Require().NoError(err)
		s.Equal(id, got.ID())
	})

	s.Run("success: emission survives caller cancellation", func() {
		cctx, cancel := context.WithCancel(context.Background())
		updated := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusAccepted).BuildDomain()
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusAccepted).
			DoAndReturn(func(context.Context, uuid.UUID, request.Status) (*request.Request, error) {
				cancel()
				return updated, nil
			})
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(sendCtx context.Context, _, _ string, _ any) error {
				s.NoError(sendCtx.Err())
				_, hasDeadline := sendCtx.Deadline()
				s.True(hasDeadline)
				return nil
			})

		_, err := s.uc.AcceptRequest(cctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "accepted"})

		s.NoError(err)
	})

	s.Run("failure: not found causes no notification", func() {
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusAccepted).Return(nil, nil)
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := s.uc.AcceptRequest(ctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "accepted"})

		s.Nil(got)
		s.True(errs.Is(err, errs.ErrRequestNotFound))
	})

	s.Run("failure: already accepted", func() {
		existing := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusAccepted).BuildDomain()
		s.repo.EXPECT().UpdateStatus(gomock.Any(), id, request.StatusAccepted).Return(nil, nil)
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.uc.AcceptRequest(ctx, commands.AcceptRequestInput{RequestID: id.String(), Status: "accepted"})

		s.True(errs.Is(err, errs.ErrRequestAlreadyResolved))
	})

	invalid := []struct {
		name string
		in   commands.AcceptRequestInput
	}{
		{name: "missing id", in: commands.AcceptRequestInput{Status: "accepted"}},
		{name: "malformed id", in: commands.AcceptRequestInput{RequestID: "not-a-uuid", Status: "accepted"}},
		{name: "missing status", in: commands.AcceptRequestInput{RequestID: id.String()}},
		{name: "unknown status", in: commands.AcceptRequestInput{RequestID: id.String(), Status: "maybe"}},
		{name: "case mismatch", in: commands.AcceptRequestInput{RequestID: id.String(), Status: "Accepted"}},
		{name: "back to pending", in: commands.AcceptRequestInput{RequestID: id.String(), Status: "pending"}},
	}
	for _, tc := range invalid {
		s.Run("failure: "+tc.name, func() {
			got, err := s.uc.AcceptRequest(ctx, tc.in)

			s.Nil(got)
			s.True(errs.Is(err, errs.ErrInvalidArgument))
		})
	}
}

// ================================================================================
// RejectRequest
// ================================================================================

func (s *RequestCommandsTestSuite) TestRejectRequest() {
	ctx := context.Background()
	id := uuid.New()

	s.Run("success: audit is emitted before delete", func() {
		existing := builder.NewRequestBuilder().WithID(id).WithSender("carol").BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		gomock.InOrder(
			s.audit.EXPECT().
				Send(gomock.Any(), auditChannel, commands.EventAuditLog, commands.AuditLogPayload{
					RequestID:  id.String(),
					RejectedBy: "bob",
					Timestamp:  "2024-06-01T09:30:00.123456789Z",
				}).
				Return(nil).Times(1),
			s.repo.EXPECT().DeleteByID(gomock.Any(), id).Return(nil),
		)
		s.conversation.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := s.uc.RejectRequest(ctx, id.String())

		s.NoError(err)
	})

	s.Run("success: sink failure still deletes", func() {
		existing := builder.NewRequestBuilder().WithID(id).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		s.audit.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errs.New("timeout"))
		s.repo.EXPECT().DeleteByID(gomock.Any(), id).Return(nil)

		s.NoError(s.uc.RejectRequest(ctx, id.String()))
	})

	s.Run("failure: not found causes no notification and no delete", func() {
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)
		s.audit.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		s.repo.EXPECT().DeleteByID(gomock.Any(), gomock.Any()).Times(0)

		err := s.uc.RejectRequest(ctx, id.String())

		s.True(errs.Is(err, errs.ErrRequestNotFound))
	})

	s.Run("failure: accepted request cannot be rejected", func() {
		existing := builder.NewRequestBuilder().WithID(id).WithStatus(request.StatusAccepted).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		s.audit.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := s.uc.RejectRequest(ctx, id.String())

		s.True(errs.Is(err, errs.ErrRequestAlreadyResolved))
	})

	s.Run("failure: malformed id", func() {
		err := s.uc.RejectRequest(ctx, "42")

		s.True(errs.Is(err, errs.ErrInvalidArgument))
	})

	s.Run("failure: delete error is returned", func() {
		existing := builder.NewRequestBuilder().WithID(id).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		s.audit.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.repo.EXPECT().DeleteByID(gomock.Any(), id).Return(errs.Mark(errs.New("db down"), errs.ErrStoreFailure))

		err := s.uc.RejectRequest(ctx, id.String())

		s.True(errs.Is(err, errs.ErrStoreFailure))
	})
}
