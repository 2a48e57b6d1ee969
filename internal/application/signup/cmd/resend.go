package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/logging"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type Resend struct {
	Email string
}

type ResendHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	usergetter UserGetter
	codeissuer CodeIssuer
}

type ResendHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserGetter UserGetter
	CodeIssuer CodeIssuer
}

func NewResendHandler(args ResendHandlerArgs) *ResendHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ResendHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		usergetter: args.UserGetter,
		codeissuer: args.CodeIssuer,
	}
}

// Handle issues a new code for an in-progress signup. Earlier codes
// stay valid, so a delayed first email can still be used.
func (h *ResendHandler) Handle(ctx context.Context, cmd Resend) error {
	const op = "cmd.ResendHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ResendHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	u, err := h.usergetter.GetUserByEmail(ctx, cmd.Email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		return errorx.Wrap(err, op)
	}
	if u != nil {
		otelx.RecordSpanError(span, user.ErrEmailTaken, "user already exists with this email")
		return errorx.Wrap(user.ErrEmailTaken, op)
	}
	span.AddEvent("user not found, proceeding to resend code")

	if err := h.codeissuer.ResendCode(ctx, cmd.Email); err != nil {
		otelx.RecordSpanError(span, err, "failed to resend verification code")
		return errorx.Wrap(err, op)
	}

	return nil
}
