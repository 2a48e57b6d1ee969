package query

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

// GetVerificationCodeHandler backs the dev-only endpoint that exposes the
// latest code for an email. Never mounted outside local and dev modes.
type GetVerificationCodeHandler struct {
	pool *pgxpool.Pool
}

func NewGetVerificationCodeHandler(pool *pgxpool.Pool) *GetVerificationCodeHandler {
	return &GetVerificationCodeHandler{
		pool: pool,
	}
}

func (h *GetVerificationCodeHandler) Handle(ctx context.Context, email string) (string, error) {
	var code string
	err := h.pool.QueryRow(ctx, `
        SELECT code
        FROM verification_codes
        WHERE email = $1
        ORDER BY created_at DESC
        LIMIT 1
    `, email).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorx.NewNotFound().WithCause(err)
		}
		return "", err
	}
	return code, nil
}
