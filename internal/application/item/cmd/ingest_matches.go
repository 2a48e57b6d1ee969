package itemcmd

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
)

// IngestMatches replaces the stored match set with the snapshot pushed
// by the external matching engine.
type IngestMatches struct {
	ItemID  item.ID
	Matches []MatchInput
}

type MatchInput struct {
	MatchedItemID item.ID
	Scores        item.Scores
}

type IngestMatchesHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   ItemRepo
}

type IngestMatchesHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	ItemRepo ItemRepo
}

func NewIngestMatchesHandler(args IngestMatchesHandlerArgs) *IngestMatchesHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &IngestMatchesHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.ItemRepo,
	}
}

func (h *IngestMatchesHandler) Handle(ctx context.Context, cmd IngestMatches) error {
	const op = "itemcmd.IngestMatchesHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "IngestMatchesHandler.Handle", trace.WithAttributes(
		attribute.String("item.id", cmd.ItemID.String()),
		attribute.Int("matches.count", len(cmd.Matches)),
	))
	defer span.End()

	now := time.Now().UTC()
	matches := make([]item.Match, 0, len(cmd.Matches))
	for _, m := range cmd.Matches {
		matches = append(matches, item.Match{
			ItemID:        cmd.ItemID,
			MatchedItemID: m.MatchedItemID,
			Scores:        m.Scores,
			CreatedAt:     now,
		})
	}

	if err := h.repo.ReplaceMatches(ctx, cmd.ItemID, matches); err != nil {
		otelx.RecordSpanError(span, err, "failed to replace item matches")
		return errorx.Wrap(err, op)
	}

	return nil
}
