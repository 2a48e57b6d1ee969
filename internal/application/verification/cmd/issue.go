package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("campusfound/application/verification/cmd")
	logger = otelslog.NewLogger("campusfound/application/verification/cmd")
)

type IssueCode struct {
	Email string
}

type IssueCodeHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type IssueCodeHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewIssueCodeHandler(args IssueCodeHandlerArgs) *IssueCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &IssueCodeHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

// Handle creates and stores a fresh code for the email. Earlier codes
// for the same email stay valid until they age out.
func (h *IssueCodeHandler) Handle(ctx context.Context, cmd IssueCode) error {
	const op = "cmd.IssueCodeHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "IssueCodeHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	rec, err := verification.NewRecord(cmd.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create verification record")
		return errorx.Wrap(err, op)
	}

	if err := h.repo.SaveRecord(ctx, rec); err != nil {
		otelx.RecordSpanError(span, err, "failed to save verification record")
		return errorx.Wrap(err, op)
	}

	return nil
}
