package itemquery

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultTopMatches = 5
)

var (
	tracer = otel.Tracer("campusfound/internal/application/item/query")
	logger = otelslog.NewLogger("campusfound/internal/application/item/query")
)

type ItemReader interface {
	GetItemByID(ctx context.Context, id item.ID) (*item.Item, error)
	ListItems(ctx context.Context, filter item.Filter) ([]*item.Item, error)
	GetTopMatches(ctx context.Context, id item.ID, limit int) ([]item.Match, error)
}

type Handler struct {
	tracer trace.Tracer
	logger *slog.Logger
	reader ItemReader
}

type HandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Reader ItemReader
}

func NewHandler(args HandlerArgs) *Handler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &Handler{
		tracer: args.Tracer,
		logger: args.Logger,
		reader: args.Reader,
	}
}

func (h *Handler) GetItem(ctx context.Context, id item.ID) (*item.Item, error) {
	const op = "itemquery.Handler.GetItem"
	ctx, span := h.tracer.Start(ctx, "Handler.GetItem",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	it, err := h.reader.GetItemByID(ctx, id)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get item")
		return nil, errorx.Wrap(err, op)
	}

	return it, nil
}

type ListItems struct {
	Kind   item.Kind
	Status item.Status
	Page   int
	Size   int
}

func (h *Handler) ListItems(ctx context.Context, q ListItems) ([]*item.Item, error) {
	const op = "itemquery.Handler.ListItems"
	ctx, span := h.tracer.Start(ctx, "Handler.ListItems")
	defer span.End()

	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}

	items, err := h.reader.ListItems(ctx, item.Filter{
		Kind:   q.Kind,
		Status: q.Status,
		Limit:  q.Size,
		Offset: (q.Page - 1) * q.Size,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list items")
		return nil, errorx.Wrap(err, op)
	}

	return items, nil
}

// GetTopMatches serves the match panel on the item page. The engine's
// overall score decides the ordering.
func (h *Handler) GetTopMatches(ctx context.Context, id item.ID, limit int) ([]item.Match, error) {
	const op = "itemquery.Handler.GetTopMatches"
	ctx, span := h.tracer.Start(ctx, "Handler.GetTopMatches",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	if limit <= 0 {
		limit = DefaultTopMatches
	}

	matches, err := h.reader.GetTopMatches(ctx, id, limit)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get item matches")
		return nil, errorx.Wrap(err, op)
	}

	return matches, nil
}
