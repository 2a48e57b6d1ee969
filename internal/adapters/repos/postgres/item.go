package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/postgres"
	"gitlab.com/campusfound/campusfound-backend/pkg/watermillx"
)

type ItemRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewItemRepo creates a new instance of ItemRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewItemRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *ItemRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &ItemRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

const itemColumns = `id, reporter_id, kind, name, description, location, photo_url, status, created_at, updated_at`

func scanItem(row pgx.Row) (ItemDTO, error) {
	var dto ItemDTO
	err := row.Scan(
		&dto.ID, &dto.ReporterID, &dto.Kind, &dto.Name,
		&dto.Description, &dto.Location, &dto.PhotoURL,
		&dto.Status, &dto.CreatedAt, &dto.UpdatedAt,
	)
	return dto, err
}

func (r *ItemRepo) SaveItem(ctx context.Context, i *item.Item) error {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.SaveItem")
	defer span.End()

	dto := DomainToItemDTO(i)

	query := `
        INSERT INTO items (id, reporter_id, kind, name, description, location, photo_url, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.ReporterID, dto.Kind, dto.Name,
			dto.Description, dto.Location, dto.PhotoURL,
			dto.Status, dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert item")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting item")
			return fmt.Errorf("failed to insert item: %w", ErrNoRowsAffected)
		}

		if events := i.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

func (r *ItemRepo) GetItemByID(ctx context.Context, id item.ID) (*item.Item, error) {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.GetItemByID")
	defer span.End()

	query := `
        SELECT ` + itemColumns + `
        FROM items
        WHERE id = $1;
    `

	dto, err := scanItem(r.pool.QueryRow(ctx, query, uuid.UUID(id)))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get item by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return ItemToDomain(dto), nil
}

func (r *ItemRepo) ListItems(ctx context.Context, filter item.Filter) ([]*item.Item, error) {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.ListItems")
	defer span.End()

	query := `
        SELECT ` + itemColumns + `
        FROM items
        WHERE ($1 = '' OR kind = $1)
          AND ($2 = '' OR status = $2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4;
    `

	rows, err := r.pool.Query(ctx, query, filter.Kind.String(), filter.Status.String(), filter.Limit, filter.Offset)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to list items")
		return nil, err
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		dto, err := scanItem(rows)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan item row")
			return nil, err
		}
		items = append(items, ItemToDomain(dto))
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate item rows")
		return nil, err
	}

	return items, nil
}

func (r *ItemRepo) UpdateItem(
	ctx context.Context,
	id item.ID,
	fn func(ctx context.Context, i *item.Item) error,
) error {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.UpdateItem")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := `
        SELECT ` + itemColumns + `
        FROM items
        WHERE id = $1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE items
        SET name = $2, description = $3, location = $4,
            photo_url = $5, status = $6, updated_at = $7
        WHERE id = $1;
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto, err := scanItem(tx.QueryRow(ctx, selectquery, uuid.UUID(id)))
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get item for update")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return err
		}

		i := ItemToDomain(dto)

		fnerr := fn(ctx, i)
		if fnerr != nil && !errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "failed to apply update function")
			return fnerr
		}

		dto = DomainToItemDTO(i)

		res, err := tx.Exec(ctx, updatequery,
			dto.ID, dto.Name, dto.Description, dto.Location,
			dto.PhotoURL, dto.Status, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update item")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating item")
			return fmt.Errorf("failed to update item: %w", ErrNoRowsAffected)
		}

		if events := i.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}

		if fnerr != nil && errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "update function returned an error but is allowed to continue")
			return fnerr
		}
		return nil
	})
}

// ReplaceMatches swaps the stored match set for an item with the latest
// snapshot from the matching engine.
func (r *ItemRepo) ReplaceMatches(ctx context.Context, id item.ID, matches []item.Match) error {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.ReplaceMatches")
	defer span.End()

	deletequery := `DELETE FROM item_matches WHERE item_id = $1;`
	insertquery := `
        INSERT INTO item_matches (item_id, matched_item_id, overall_score, name_score, description_score, location_score, image_score, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deletequery, uuid.UUID(id)); err != nil {
			otelx.RecordSpanError(span, err, "failed to clear item matches")
			return err
		}

		for _, m := range matches {
			_, err := tx.Exec(ctx, insertquery,
				uuid.UUID(m.ItemID), uuid.UUID(m.MatchedItemID),
				m.Scores.Overall, m.Scores.Name, m.Scores.Description,
				m.Scores.Location, m.Scores.Image, m.CreatedAt,
			)
			if err != nil {
				otelx.RecordSpanError(span, err, "failed to insert item match")
				return err
			}
		}
		return nil
	})
}

// GetTopMatches returns the item's matches ordered by overall score.
func (r *ItemRepo) GetTopMatches(ctx context.Context, id item.ID, limit int) ([]item.Match, error) {
	ctx, span := r.tracer.Start(ctx, "ItemRepo.GetTopMatches")
	defer span.End()

	query := `
        SELECT item_id, matched_item_id, overall_score, name_score, description_score, location_score, image_score, created_at
        FROM item_matches
        WHERE item_id = $1
        ORDER BY overall_score DESC
        LIMIT $2;
    `

	rows, err := r.pool.Query(ctx, query, uuid.UUID(id), limit)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get item matches")
		return nil, err
	}
	defer rows.Close()

	var matches []item.Match
	for rows.Next() {
		var dto ItemMatchDTO
		err := rows.Scan(
			&dto.ItemID, &dto.MatchedItemID,
			&dto.OverallScore, &dto.NameScore, &dto.DescriptionScore,
			&dto.LocationScore, &dto.ImageScore, &dto.CreatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan item match row")
			return nil, err
		}
		matches = append(matches, ItemMatchToDomain(dto))
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate item match rows")
		return nil, err
	}

	return matches, nil
}
