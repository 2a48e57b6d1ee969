package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

type UserRepo struct {
	*EventRepo
	dbbyID    map[user.ID]*user.User
	dbbyEmail map[string]*user.User
	mu        sync.Mutex
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		EventRepo: NewEventRepo(),
		dbbyID:    make(map[user.ID]*user.User),
		dbbyEmail: make(map[string]*user.User),
	}
}

func (r *UserRepo) GetUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.dbbyID[id]; exists {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.dbbyEmail[email]; exists {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.dbbyEmail[email]
	return exists, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u == nil {
		return errors.New("user cannot be nil")
	}

	if _, exists := r.dbbyEmail[u.Email()]; exists {
		return errorx.NewDuplicateEntry()
	}
	if _, exists := r.dbbyID[u.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}

	r.dbbyID[u.ID()] = u
	r.dbbyEmail[u.Email()] = u

	r.appendEvents(u.GetUncommittedEvents()...)
	u.MarkEventsAsCommitted()

	return nil
}

func (r *UserRepo) UpdateUser(ctx context.Context, id user.ID, fn func(context.Context, *user.User) error) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.dbbyID[id]
	if !exists {
		return errorx.NewNotFound()
	}

	fnerr := fn(ctx, u)
	if fnerr != nil && !errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}

	r.dbbyID[id] = u
	r.dbbyEmail[u.Email()] = u

	r.appendEvents(u.GetUncommittedEvents()...)
	u.MarkEventsAsCommitted()

	if fnerr != nil && errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}
	return nil
}

func (r *UserRepo) SeedUser(t *testing.T, u *user.User) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyEmail[u.Email()]; exists {
		t.Fatalf("user with email %s already exists", u.Email())
	}
	if _, exists := r.dbbyID[u.ID()]; exists {
		t.Fatalf("user with ID %s already exists", u.ID())
	}

	r.dbbyID[u.ID()] = u
	r.dbbyEmail[u.Email()] = u
}

func (r *UserRepo) AssertUserExistsByEmail(t *testing.T, email string) *user.User {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.dbbyEmail[email]
	if !exists {
		t.Errorf("expected user with email %s to exist, but it does not", email)
		return nil
	}
	return u
}

func (r *UserRepo) AssertUserNotExistsByEmail(t *testing.T, email string) *UserRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyEmail[email]; exists {
		t.Errorf("expected user with email %s to not exist, but it does", email)
	}
	return r
}
