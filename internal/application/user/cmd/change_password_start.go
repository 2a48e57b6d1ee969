package usercmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type ChangePasswordStart struct {
	UserID          user.ID
	CurrentPassword string
}

type ChangePasswordStartHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	repo       UserRepo
	codeissuer CodeIssuer
}

type ChangePasswordStartHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserRepo   UserRepo
	CodeIssuer CodeIssuer
}

func NewChangePasswordStartHandler(args ChangePasswordStartHandlerArgs) *ChangePasswordStartHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ChangePasswordStartHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		repo:       args.UserRepo,
		codeissuer: args.CodeIssuer,
	}
}

// Handle re-proves the current password before issuing a code to the
// account's email. A wrong password never costs a code.
func (h *ChangePasswordStartHandler) Handle(ctx context.Context, cmd ChangePasswordStart) error {
	const op = "usercmd.ChangePasswordStartHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ChangePasswordStartHandler.Handle",
		trace.WithAttributes(attribute.String("user.id", cmd.UserID.String())),
	)
	defer span.End()

	u, err := h.repo.GetUserByID(ctx, cmd.UserID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		return errorx.Wrap(err, op)
	}

	if err := u.ComparePassword(cmd.CurrentPassword); err != nil {
		otelx.RecordSpanError(span, err, "current password check failed")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("current password confirmed")

	if err := h.codeissuer.IssueCode(ctx, u.Email()); err != nil {
		otelx.RecordSpanError(span, err, "failed to issue verification code")
		return errorx.Wrap(err, op)
	}

	return nil
}
