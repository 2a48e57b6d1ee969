package cmd

import (
	"context"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
)

type Repo interface {
	SaveRecord(ctx context.Context, r *verification.Record) error
	FindRecord(ctx context.Context, email, code string) (*verification.Record, error)
}
