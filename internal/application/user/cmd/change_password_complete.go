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

// ChangePasswordComplete carries the current password again. The commit
// step re-proves it on its own; passing the start step once is not
// enough.
type ChangePasswordComplete struct {
	UserID          user.ID
	CurrentPassword string
	NewPassword     string
	Code            string
}

type ChangePasswordCompleteHandler struct {
	tracer      trace.Tracer
	logger      *slog.Logger
	repo        UserRepo
	codechecker CodeChecker
}

type ChangePasswordCompleteHandlerArgs struct {
	Tracer      trace.Tracer
	Logger      *slog.Logger
	UserRepo    UserRepo
	CodeChecker CodeChecker
}

func NewChangePasswordCompleteHandler(args ChangePasswordCompleteHandlerArgs) *ChangePasswordCompleteHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ChangePasswordCompleteHandler{
		tracer:      args.Tracer,
		logger:      args.Logger,
		repo:        args.UserRepo,
		codechecker: args.CodeChecker,
	}
}

func (h *ChangePasswordCompleteHandler) Handle(ctx context.Context, cmd ChangePasswordComplete) error {
	const op = "usercmd.ChangePasswordCompleteHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ChangePasswordCompleteHandler.Handle",
		trace.WithAttributes(attribute.String("user.id", cmd.UserID.String())),
	)
	defer span.End()

	u, err := h.repo.GetUserByID(ctx, cmd.UserID)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		return errorx.Wrap(err, op)
	}

	if err := h.codechecker.CheckCode(ctx, u.Email(), cmd.Code); err != nil {
		otelx.RecordSpanError(span, err, "verification code check failed")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("verification code accepted")

	err = h.repo.UpdateUser(ctx, cmd.UserID, func(ctx context.Context, u *user.User) error {
		if err := u.ChangePassword(cmd.CurrentPassword, cmd.NewPassword); err != nil {
			return errorx.Wrap(err, op)
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to change password")
		return errorx.Wrap(err, op)
	}

	return nil
}
