package itemcmd

import (
	"context"
	"io"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
)

type ItemRepo interface {
	SaveItem(ctx context.Context, i *item.Item) error
	UpdateItem(ctx context.Context, id item.ID, fn func(context.Context, *item.Item) error) error
	ReplaceMatches(ctx context.Context, id item.ID, matches []item.Match) error
}

type PhotoStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
}
