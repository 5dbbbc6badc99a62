package commands

import (
	"context"
	"log/slog"
	"time"

	"request-hub/internal/domain/request"
	"request-hub/internal/pkg/clock"
	"request-hub/internal/pkg/errs"
	"request-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("request-hub/usecase/commands")

type SendRequestInput struct {
	Receiver string
}

type AcceptRequestInput struct {
	RequestID string
	Status    string
}

//go:generate mockgen -source=request.go -destination=../../../tests/mock/commands/mock_request.go -package=commandsmock

type RequestCommands interface {
	SendRequest(ctx context.Context, credential string, in SendRequestInput) (*request.Request, error)
	AcceptRequest(ctx context.Context, in AcceptRequestInput) (*request.Request, error)
	RejectRequest(ctx context.Context, requestID string) error
}

type requestUseCaseImpl struct {
	repo        shared.RequestRepository
	identities  shared.CredentialResolver
	sinks       shared.Sinks
	clock       clock.Clock
	logger      *slog.Logger
	sendTimeout time.Duration
}

func NewRequestUseCase(
	repo shared.RequestRepository,
	identities shared.CredentialResolver,
	sinks shared.Sinks,
	clk clock.Clock,
	logger *slog.Logger,
	sendTimeout time.Duration,
) RequestCommands {
	return &requestUseCaseImpl{
		repo:        repo,
		identities:  identities,
		sinks:       sinks,
		clock:       clk,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

func (uc *requestUseCaseImpl) SendRequest(ctx context.Context, credential string, in SendRequestInput) (_ *request.Request, err error) {
	ctx, span := tracer.Start(ctx, "RequestCommands.SendRequest")
	defer func() { endSpan(span, err) }()

	sender, err := uc.identities.ResolveIdentity(ctx, credential)
	if err != nil {
		return nil, err
	}

	draft, err := request.Draft(sender, in.Receiver)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("request.sender", draft.Sender()),
		attribute.String("request.receiver", draft.Receiver()),
	)

	existing, err := uc.repo.FindPending(ctx, draft.Sender(), draft.Receiver())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicatePendingRequest
	}

	created, err := uc.repo.Insert(ctx, draft)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("request.id", created.ID().String()))

	uc.logger.InfoContext(ctx, "request sent",
		slog.String("request_id", created.ID().String()),
		slog.String("sender", created.Sender()),
		slog.String("receiver", created.Receiver()))
	return created, nil
}

func (uc *requestUseCaseImpl) AcceptRequest(ctx context.Context, in AcceptRequestInput) (_ *request.Request, err error) {
	ctx, span := tracer.Start(ctx, "RequestCommands.AcceptRequest")
	defer func() { endSpan(span, err) }()

	id, err := parseRequestID(in.RequestID)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		return nil, errs.Invalid("status is required")
	}
	status, err := request.ParseTargetStatus(in.Status)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("request.id", id.String()),
		attribute.String("request.status", status.String()),
	)

	updated, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, uc.explainMissedUpdate(ctx, id, status)
	}

	uc.logger.InfoContext(ctx, "request status updated",
		slog.String("request_id", id.String()),
		slog.String("status", status.String()))

	if status == request.StatusAccepted {
		uc.emit(ctx, uc.sinks.Conversation, EventCreateConversation, CreateConversationPayload{
			User1: updated.Sender(),
			User2: updated.Receiver(),
		})
	}

	return updated, nil
}

func (uc *requestUseCaseImpl) RejectRequest(ctx context.Context, requestID string) (err error) {
	ctx, span := tracer.Start(ctx, "RequestCommands.RejectRequest")
	defer func() { endSpan(span, err) }()

	id, err := parseRequestID(requestID)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("request.id", id.String()))

	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.ErrRequestNotFound
	}
	if err := existing.CheckTransition(request.StatusRejected); err != nil {
		return err
	}

	// The audit entry is built from the record, so it goes out before the delete.
	uc.emit(ctx, uc.sinks.Audit, EventAuditLog, AuditLogPayload{
		RequestID:  existing.ID().String(),
		RejectedBy: existing.Receiver(),
		Timestamp:  uc.clock.Now().UTC().Format(time.RFC3339Nano),
	})

	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "request rejected",
		slog.String("request_id", id.String()),
		slog.String("rejected_by", existing.Receiver()))
	return nil
}

// explainMissedUpdate tells an unknown id apart from one that is no longer pending.
func (uc *requestUseCaseImpl) explainMissedUpdate(ctx context.Context, id uuid.UUID, status request.Status) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.ErrRequestNotFound
	}
	if err := existing.CheckTransition(status); err != nil {
		return err
	}
	// Still pending, so the guarded update lost to a concurrent writer.
	return request.ErrNotPending
}

// emit delivers best-effort: failures are logged, never returned, and a cancelled caller does not abort the send.
func (uc *requestUseCaseImpl) emit(ctx context.Context, sink shared.Sink, event string, payload any) {
	sendCtx := context.WithoutCancel(ctx)
	if uc.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, uc.sendTimeout)
		defer cancel()
	}

	sendCtx, span := tracer.Start(sendCtx, "Sink.Emit", trace.WithAttributes(
		attribute.String("sink.channel", sink.Channel),
		attribute.String("sink.event", event),
	))
	defer span.End()

	if err := sink.Emit(sendCtx, event, payload); err != nil {
		err = errs.Mark(errs.Wrapf(err, "emit %s to %s", event, sink.Channel), errs.ErrSinkFailure)
		span.RecordError(err)
		span.SetStatus(codes.Error, "emit failed")
		uc.logger.WarnContext(ctx, "notification emit failed",
			slog.String("channel", sink.Channel),
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

func parseRequestID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errs.Invalid("request id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Invalid("request id must be a UUID")
	}
	return id, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
