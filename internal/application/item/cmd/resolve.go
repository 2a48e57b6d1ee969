package itemcmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

type Resolve struct {
	ItemID item.ID
	UserID user.ID
}

type ResolveHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   ItemRepo
}

type ResolveHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	ItemRepo ItemRepo
}

func NewResolveHandler(args ResolveHandlerArgs) *ResolveHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ResolveHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.ItemRepo,
	}
}

func (h *ResolveHandler) Handle(ctx context.Context, cmd Resolve) error {
	const op = "itemcmd.ResolveHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ResolveHandler.Handle", trace.WithAttributes(
		attribute.String("item.id", cmd.ItemID.String()),
		attribute.String("user.id", cmd.UserID.String()),
	))
	defer span.End()

	err := h.repo.UpdateItem(ctx, cmd.ItemID, func(ctx context.Context, i *item.Item) error {
		if err := i.Resolve(cmd.UserID); err != nil {
			return errorx.Wrap(err, op)
		}
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to resolve item")
		return errorx.Wrap(err, op)
	}

	return nil
}
