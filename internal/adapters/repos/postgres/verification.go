package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/postgres"
	"gitlab.com/campusfound/campusfound-backend/pkg/watermillx"
)

type VerificationRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewVerificationRepo creates a new instance of VerificationRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewVerificationRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *VerificationRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &VerificationRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

func (r *VerificationRepo) SaveRecord(ctx context.Context, rec *verification.Record) error {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.SaveRecord")
	defer span.End()

	dto := DomainToVerificationDTO(rec)

	query := `
        INSERT INTO verification_codes (id, email, code, created_at)
        VALUES ($1, $2, $3, $4)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query, dto.ID, dto.Email, dto.Code, dto.CreatedAt)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert verification record")
			return err
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting verification record")
			return fmt.Errorf("failed to insert verification record: %w", ErrNoRowsAffected)
		}

		if events := rec.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

// FindRecord returns the newest record for the exact email and code pair.
func (r *VerificationRepo) FindRecord(ctx context.Context, email, code string) (*verification.Record, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.FindRecord")
	defer span.End()

	query := `
        SELECT id, email, code, created_at
        FROM verification_codes
        WHERE email = $1 AND code = $2
        ORDER BY created_at DESC
        LIMIT 1;
    `

	var dto VerificationDTO
	err := r.pool.QueryRow(ctx, query, email, code).Scan(&dto.ID, &dto.Email, &dto.Code, &dto.CreatedAt)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to find verification record")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return VerificationToDomain(dto), nil
}

// LatestByEmail returns the newest record for the email regardless of code.
func (r *VerificationRepo) LatestByEmail(ctx context.Context, email string) (*verification.Record, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.LatestByEmail")
	defer span.End()

	query := `
        SELECT id, email, code, created_at
        FROM verification_codes
        WHERE email = $1
        ORDER BY created_at DESC
        LIMIT 1;
    `

	var dto VerificationDTO
	err := r.pool.QueryRow(ctx, query, email).Scan(&dto.ID, &dto.Email, &dto.Code, &dto.CreatedAt)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get latest verification record")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return VerificationToDomain(dto), nil
}

// DeleteRecordsBefore removes records created before the cutoff and
// returns the number of rows removed. Used by the retention sweep only;
// the verification flow itself never deletes records.
func (r *VerificationRepo) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.DeleteRecordsBefore")
	defer span.End()

	query := `DELETE FROM verification_codes WHERE created_at < $1;`

	res, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to delete expired verification records")
		return 0, err
	}

	return res.RowsAffected(), nil
}
