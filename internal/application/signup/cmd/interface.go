package cmd

import (
	"context"

	authapp "gitlab.com/campusfound/campusfound-backend/internal/application/auth"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

type UserGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}

type UserSaver interface {
	SaveUser(ctx context.Context, u *user.User) error
}

type CodeIssuer interface {
	IssueCode(ctx context.Context, email string) error
	ResendCode(ctx context.Context, email string) error
}

type CodeChecker interface {
	CheckCode(ctx context.Context, email, code string) error
}

type TokenIssuer interface {
	IssueTokens(ctx context.Context, u *user.User) (authapp.LoginResponse, error)
}
