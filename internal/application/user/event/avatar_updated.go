package userevent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

var (
	tracer = otel.Tracer("campusfound/internal/application/user/event")
	logger = otelslog.NewLogger("campusfound/internal/application/user/event")
)

type ProfileCacheClearer interface {
	ClearProfile(ctx context.Context, id user.ID) error
}

// AvatarUpdatedHandler drops the cached profile snapshot so the next read
// sees the new avatar.
type AvatarUpdatedHandler struct {
	cache ProfileCacheClearer
}

func NewAvatarUpdatedHandler(cache ProfileCacheClearer) *AvatarUpdatedHandler {
	return &AvatarUpdatedHandler{
		cache: cache,
	}
}

func (h *AvatarUpdatedHandler) Handle(ctx context.Context, e *user.AvatarUpdated) error {
	if e == nil {
		return nil
	}
	ctx, span := tracer.Start(ctx, "AvatarUpdatedHandler.Handle",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.user.id", e.UserID.String()),
		),
	)
	defer span.End()

	if err := h.cache.ClearProfile(ctx, e.UserID); err != nil {
		logger.WarnContext(ctx, "failed to clear cached profile",
			slog.String("user_id", e.UserID.String()),
			slog.String("error", err.Error()))
		return err
	}

	logger.DebugContext(ctx, "cleared cached profile", slog.String("user_id", e.UserID.String()))
	return nil
}
