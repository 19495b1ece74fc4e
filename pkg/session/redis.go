package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/internship-admin/pkg/config"
)

// DialRedis returns a configured Redis client for the session store, failing
// fast when the server cannot be reached.
func DialRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// NewStore builds the store selected by configuration. The returned closer
// is a no-op for stores without connections.
func NewStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case config.SessionStoreRedis:
		client, err := DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := NewRedisStore(client, cfg.Session.KeyPrefix)
		return store, store.Close, nil
	case config.SessionStoreFile, "":
		store, err := NewFileStore(cfg.Session.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
