package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	userquery "gitlab.com/campusfound/campusfound-backend/internal/application/user/query"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

const (
	profileKeyPrefix = "profile:"
	profileTTL       = 15 * time.Minute
)

type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &ProfileCache{client: client}
}

// GetProfile returns a not-found error on cache miss so callers can fall
// back to the database.
func (c *ProfileCache) GetProfile(ctx context.Context, id user.ID) (*userquery.Profile, error) {
	const op = "cache.ProfileCache.GetProfile"

	data, err := c.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, errorx.Wrap(err, op)
	}

	var p userquery.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errorx.Wrap(err, op)
	}

	return &p, nil
}

func (c *ProfileCache) SetProfile(ctx context.Context, id user.ID, p *userquery.Profile) error {
	const op = "cache.ProfileCache.SetProfile"

	data, err := json.Marshal(p)
	if err != nil {
		return errorx.Wrap(err, op)
	}

	if err := c.client.Set(ctx, profileKey(id), data, profileTTL).Err(); err != nil {
		return errorx.Wrap(err, op)
	}
	return nil
}

func (c *ProfileCache) ClearProfile(ctx context.Context, id user.ID) error {
	const op = "cache.ProfileCache.ClearProfile"

	if err := c.client.Del(ctx, profileKey(id)).Err(); err != nil {
		return errorx.Wrap(err, op)
	}
	return nil
}

func profileKey(id user.ID) string {
	return fmt.Sprintf("%s%s", profileKeyPrefix, id.String())
}
