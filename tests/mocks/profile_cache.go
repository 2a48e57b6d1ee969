package mocks

import (
	"context"
	"sync"
	"testing"

	userquery "gitlab.com/campusfound/campusfound-backend/internal/application/user/query"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

type ProfileCache struct {
	mu       sync.Mutex
	profiles map[user.ID]*userquery.Profile

	GetErr error
	SetErr error
}

func NewProfileCache() *ProfileCache {
	return &ProfileCache{
		profiles: make(map[user.ID]*userquery.Profile),
	}
}

func (c *ProfileCache) GetProfile(ctx context.Context, id user.ID) (*userquery.Profile, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, exists := c.profiles[id]; exists {
		return p, nil
	}
	return nil, errorx.NewNotFound()
}

func (c *ProfileCache) SetProfile(ctx context.Context, id user.ID, p *userquery.Profile) error {
	if c.SetErr != nil {
		return c.SetErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles[id] = p
	return nil
}

func (c *ProfileCache) ClearProfile(ctx context.Context, id user.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.profiles, id)
	return nil
}

func (c *ProfileCache) SeedProfile(t *testing.T, id user.ID, p *userquery.Profile) {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles[id] = p
}

func (c *ProfileCache) AssertCached(t *testing.T, id user.ID) *userquery.Profile {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	p, exists := c.profiles[id]
	if !exists {
		t.Errorf("expected profile for user %s to be cached, but it is not", id)
		return nil
	}
	return p
}

func (c *ProfileCache) AssertNotCached(t *testing.T, id user.ID) *ProfileCache {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.profiles[id]; exists {
		t.Errorf("expected profile for user %s to not be cached, but it is", id)
	}
	return c
}
