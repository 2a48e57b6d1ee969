package cmd

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type CheckCode struct {
	Email string
	Code  string
}

type CheckCodeHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
	now    func() time.Time
}

type CheckCodeHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
	Now    func() time.Time
}

func NewCheckCodeHandler(args CheckCodeHandlerArgs) *CheckCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}
	if args.Now == nil {
		args.Now = time.Now
	}

	return &CheckCodeHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
		now:    args.Now,
	}
}

// Handle accepts only an exact email and code pair whose record is still
// within its lifetime. Records are never consumed; a code that checked
// out once checks out again until it expires.
func (h *CheckCodeHandler) Handle(ctx context.Context, cmd CheckCode) error {
	const op = "cmd.CheckCodeHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "CheckCodeHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	rec, err := h.repo.FindRecord(ctx, cmd.Email, cmd.Code)
	if err != nil {
		if errorx.IsNotFound(err) {
			span.AddEvent("no matching verification record")
			return errorx.Wrap(verification.ErrInvalidCode.WithCause(err), op)
		}
		otelx.RecordSpanError(span, err, "failed to find verification record")
		return errorx.Wrap(err, op)
	}

	if err := rec.CheckAt(h.now()); err != nil {
		span.AddEvent("verification code expired")
		return errorx.Wrap(err, op)
	}

	return nil
}
