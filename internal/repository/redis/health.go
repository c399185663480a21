package redis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const RD_KEY_BACKEND_HEALTH = "backend_health:"

type healthRedisRepository struct {
	db    *redis.Client
	cache sync.Map // backend -> bool, avoids a round trip on the hot path
}

func NewHealthRepository(db *redis.Client) *healthRedisRepository {
	return &healthRedisRepository{db: db}
}

func (r *healthRedisRepository) Lock(ctx context.Context) error {
	return r.db.SetNX(ctx, "health_monitor_locked", true, 5*time.Second).Err()
}

func (r *healthRedisRepository) Unlock(ctx context.Context) error {
	return r.db.Set(ctx, "health_monitor_locked", false, 5*time.Second).Err()
}

func (r *healthRedisRepository) SaveBackendHealth(ctx context.Context, backend string, healthy bool) error {
	r.cache.Store(backend, healthy)
	return r.db.Set(ctx, RD_KEY_BACKEND_HEALTH+backend, healthy, 30*time.Second).Err()
}

func (r *healthRedisRepository) GetBackendHealth(ctx context.Context, backend string) (bool, error) {
	if healthy, ok := r.cache.Load(backend); ok {
		return healthy.(bool), nil
	}
	healthy, err := r.db.Get(ctx, RD_KEY_BACKEND_HEALTH+backend).Bool()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("[RP:Health:GetBackendHealth] - Failed to read backend health", "backend", backend, "error", err)
		}
		// Unknown backends are assumed healthy until the monitor says otherwise.
		return true, nil
	}
	return healthy, nil
}
