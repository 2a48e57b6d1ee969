package ctxs

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/role"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

type ctxKey int

const (
	txKey ctxKey = iota
	userKey
)

// User is the authenticated principal extracted from the access token.
type User struct {
	ID   user.ID
	Role role.Role
}

func (u *User) SetSpanAttrs(span trace.Span) {
	if u == nil || span == nil {
		return
	}
	span.SetAttributes(
		attribute.String("user.id", u.ID.String()),
		attribute.String("user.role", u.Role.String()),
	)
}

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func Tx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromCtx(ctx context.Context) (*User, error) {
	u, ok := ctx.Value(userKey).(*User)
	if !ok || u == nil {
		return nil, errorx.NewUnauthorized()
	}
	return u, nil
}
