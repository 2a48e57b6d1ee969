package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

const pingTimeout = 1500 * time.Millisecond

func NewRedis(addr, password string) (*redis.Client, error) {
	const op = "cache.NewRedis"
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		return nil, errorx.Wrap(err, op)
	}

	return client, nil
}
