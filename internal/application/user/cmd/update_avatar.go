package usercmd

import (
	"context"
	"io"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("campusfound/internal/application/user/cmd")
	logger = otelslog.NewLogger("campusfound/internal/application/user/cmd")
)

type UpdateAvatar struct {
	UserID      user.ID
	File        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type UpdateAvatarHandler struct {
	tracer        trace.Tracer
	avatarService *user.AvatarService
	storage       AvatarStorage
	repo          UserRepo
}

type UpdateAvatarHandlerArgs struct {
	Tracer              trace.Tracer
	AvatarDomainService *user.AvatarService
	Storage             AvatarStorage
	UserRepo            UserRepo
}

func NewUpdateAvatarHandler(args UpdateAvatarHandlerArgs) *UpdateAvatarHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}

	return &UpdateAvatarHandler{
		tracer:        args.Tracer,
		avatarService: args.AvatarDomainService,
		storage:       args.Storage,
		repo:          args.UserRepo,
	}
}

func (h *UpdateAvatarHandler) Handle(ctx context.Context, cmd *UpdateAvatar) error {
	const op = "usercmd.UpdateAvatarHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UpdateAvatarHandler.Handle", trace.WithAttributes(
		attribute.String("user.id", cmd.UserID.String()),
		attribute.String("file.content_type", cmd.ContentType),
		attribute.Int64("file.size", cmd.Size),
		attribute.String("file.filename", cmd.Filename),
	))
	defer span.End()

	if err := h.avatarService.ValidateAvatarFile(cmd.ContentType, cmd.Size); err != nil {
		otelx.RecordSpanError(span, err, "invalid avatar file")
		return errorx.Wrap(err, op)
	}

	key := h.avatarService.GenerateKey(cmd.UserID)
	span.AddEvent("generated new storage key", trace.WithAttributes(attribute.String("storage.key", key)))

	if err := h.storage.UploadFile(ctx, key, cmd.File, cmd.ContentType); err != nil {
		otelx.RecordSpanError(span, err, "failed to upload avatar to storage")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("uploaded new avatar to storage")

	url := h.avatarService.BuildAvatarURL(key)

	err := h.repo.UpdateUser(ctx, cmd.UserID, func(ctx context.Context, u *user.User) error {
		if err := u.SetAvatarURL(url); err != nil {
			return errorx.Wrap(err, op)
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update user avatar")
		return errorx.Wrap(err, op)
	}

	return nil
}
