package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

// VerificationRepo is an append-only in-memory store. Like the real one,
// saving never touches earlier records and nothing is consumed on check.
type VerificationRepo struct {
	*EventRepo
	records []*verification.Record
	mu      sync.Mutex
}

func NewVerificationRepo() *VerificationRepo {
	return &VerificationRepo{
		EventRepo: NewEventRepo(),
		records:   []*verification.Record{},
	}
}

func (r *VerificationRepo) SaveRecord(ctx context.Context, rec *verification.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec == nil {
		return errors.New("record cannot be nil")
	}

	r.records = append(r.records, rec)
	r.appendEvents(rec.GetUncommittedEvents()...)
	rec.MarkEventsAsCommitted()

	return nil
}

func (r *VerificationRepo) FindRecord(ctx context.Context, email, code string) (*verification.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Email() == email && r.records[i].Code() == code {
			return r.records[i], nil
		}
	}
	return nil, errorx.NewNotFound()
}

func (r *VerificationRepo) LatestByEmail(ctx context.Context, email string) (*verification.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Email() == email {
			return r.records[i], nil
		}
	}
	return nil, errorx.NewNotFound()
}

func (r *VerificationRepo) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var deleted int64
	for _, rec := range r.records {
		if rec.CreatedAt().Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept

	return deleted, nil
}

func (r *VerificationRepo) SeedRecord(t *testing.T, rec *verification.Record) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
}

func (r *VerificationRepo) RecordCountByEmail(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, rec := range r.records {
		if rec.Email() == email {
			count++
		}
	}
	return count
}

func (r *VerificationRepo) AssertRecordCountByEmail(t *testing.T, email string, expected int) *VerificationRepo {
	t.Helper()

	if got := r.RecordCountByEmail(email); got != expected {
		t.Errorf("expected %d records for %s, but got %d", expected, email, got)
	}
	return r
}

func (r *VerificationRepo) AssertRecordExists(t *testing.T, email, code string) *VerificationRepo {
	t.Helper()

	if _, err := r.FindRecord(context.Background(), email, code); err != nil {
		t.Errorf("expected record for %s with code %s to exist, but it does not", email, code)
	}
	return r
}
