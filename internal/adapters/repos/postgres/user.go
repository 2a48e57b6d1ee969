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

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/otelx"
	"gitlab.com/campusfound/campusfound-backend/pkg/postgres"
	"gitlab.com/campusfound/campusfound-backend/pkg/watermillx"
)

type UserRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewUserRepo creates a new instance of UserRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewUserRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *UserRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &UserRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

const userColumns = `id, email, first_name, last_name, role, avatar_url, pass_hash, created_at, updated_at`

func scanUser(row pgx.Row) (UserDTO, error) {
	var dto UserDTO
	err := row.Scan(
		&dto.ID, &dto.Email, &dto.FirstName, &dto.LastName,
		&dto.Role, &dto.AvatarURL, &dto.Passhash,
		&dto.CreatedAt, &dto.UpdatedAt,
	)
	return dto, err
}

func (r *UserRepo) GetUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByID")
	defer span.End()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1;
    `

	dto, err := scanUser(r.pool.QueryRow(ctx, query, uuid.UUID(id)))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return UserToDomain(dto), nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByEmail")
	defer span.End()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1;
    `

	dto, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, err
	}

	return UserToDomain(dto), nil
}

func (r *UserRepo) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.IsEmailTaken")
	defer span.End()

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1);`

	var taken bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&taken); err != nil {
		otelx.RecordSpanError(span, err, "failed to check email availability")
		return false, err
	}

	return taken, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	ctx, span := r.tracer.Start(ctx, "UserRepo.SaveUser")
	defer span.End()

	dto := DomainToUserDTO(u)

	query := `
        INSERT INTO users (id, email, first_name, last_name, role, avatar_url, pass_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.Email, dto.FirstName, dto.LastName,
			dto.Role, dto.AvatarURL, dto.Passhash,
			dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert user")
			return mapConstraintErr(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting user")
			return fmt.Errorf("failed to insert user: %w", ErrNoRowsAffected)
		}

		if events := u.GetUncommittedEvents(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

func (r *UserRepo) UpdateUser(
	ctx context.Context,
	id user.ID,
	fn func(ctx context.Context, u *user.User) error,
) error {
	ctx, span := r.tracer.Start(ctx, "UserRepo.UpdateUser")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE users
        SET email = $2, first_name = $3, last_name = $4, role = $5,
            avatar_url = $6, pass_hash = $7, updated_at = $8
        WHERE id = $1;
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		dto, err := scanUser(tx.QueryRow(ctx, selectquery, uuid.UUID(id)))
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get user for update")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewNotFound().WithCause(err)
			}
			return err
		}

		u := UserToDomain(dto)

		fnerr := fn(ctx, u)
		if fnerr != nil && !errorx.IsPersistable(fnerr) {
			otelx.RecordSpanError(span, fnerr, "failed to apply update function")
			return fnerr
		}

		dto = DomainToUserDTO(u)

		res, err := tx.Exec(ctx, updatequery,
			dto.ID, dto.Email, dto.FirstName, dto.LastName,
			dto.Role, dto.AvatarURL, dto.Passhash, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update user")
			return mapConstraintErr(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating user")
			return fmt.Errorf("failed to update user: %w", ErrNoRowsAffected)
		}

		if events := u.GetUncommittedEvents(); len(events) > 0 {
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
