package usercmd

import (
	"context"
	"io"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id user.ID) (*user.User, error)
	UpdateUser(ctx context.Context, id user.ID, fn func(context.Context, *user.User) error) error
}

type AvatarStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFile(ctx context.Context, key string) error
}

type CodeIssuer interface {
	IssueCode(ctx context.Context, email string) error
}

type CodeChecker interface {
	CheckCode(ctx context.Context, email, code string) error
}
