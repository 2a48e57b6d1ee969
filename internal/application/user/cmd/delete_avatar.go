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

type DeleteAvatar struct {
	UserID user.ID
}

type DeleteAvatarHandler struct {
	tracer        trace.Tracer
	logger        *slog.Logger
	avatarService *user.AvatarService
	storage       AvatarStorage
	repo          UserRepo
}

type DeleteAvatarHandlerArgs struct {
	Tracer              trace.Tracer
	Logger              *slog.Logger
	AvatarDomainService *user.AvatarService
	Storage             AvatarStorage
	UserRepo            UserRepo
}

func NewDeleteAvatarHandler(args DeleteAvatarHandlerArgs) *DeleteAvatarHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &DeleteAvatarHandler{
		tracer:        args.Tracer,
		logger:        args.Logger,
		avatarService: args.AvatarDomainService,
		storage:       args.Storage,
		repo:          args.UserRepo,
	}
}

func (h *DeleteAvatarHandler) Handle(ctx context.Context, cmd *DeleteAvatar) error {
	const op = "usercmd.DeleteAvatarHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "DeleteAvatarHandler.Handle", trace.WithAttributes(
		attribute.String("user.id", cmd.UserID.String()),
	))
	defer span.End()

	var oldURL string
	err := h.repo.UpdateUser(ctx, cmd.UserID, func(ctx context.Context, u *user.User) error {
		oldURL = u.AvatarURL()
		if err := u.ClearAvatar(); err != nil {
			return errorx.Wrap(err, op)
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to clear user avatar")
		return errorx.Wrap(err, op)
	}

	// The profile no longer references the object; a leftover file only
	// costs storage, so a failed delete is logged and not surfaced.
	if key := h.avatarService.KeyFromURL(oldURL); key != "" {
		if err := h.storage.DeleteFile(ctx, key); err != nil {
			span.AddEvent("failed to delete avatar object from storage")
			h.logger.WarnContext(ctx, "failed to delete avatar object from storage",
				slog.String("storage.key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
