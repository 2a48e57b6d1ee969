package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type ResendCode struct {
	Email string
}

type ResendCodeHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type ResendCodeHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewResendCodeHandler(args ResendCodeHandlerArgs) *ResendCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ResendCodeHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

// Handle issues a brand-new code without touching any earlier records.
func (h *ResendCodeHandler) Handle(ctx context.Context, cmd ResendCode) error {
	const op = "cmd.ResendCodeHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ResendCodeHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	rec, err := verification.NewResentRecord(cmd.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create resent verification record")
		return errorx.Wrap(err, op)
	}

	if err := h.repo.SaveRecord(ctx, rec); err != nil {
		otelx.RecordSpanError(span, err, "failed to save resent verification record")
		return errorx.Wrap(err, op)
	}

	return nil
}
