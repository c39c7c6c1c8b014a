package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// InflightGuard locks a form instance for the duration of its submission, so
// a repeated POST of the same instance makes no second backend call.
type InflightGuard interface {
	// TryAcquire returns false when key is already locked.
	TryAcquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// MemoryGuard is the single-process guard. Locks expire after ttl so a
// crashed request cannot pin a form forever.
type MemoryGuard struct {
	mu    sync.Mutex
	ttl   time.Duration
	locks map[string]time.Time
	now   func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		ttl:   ttl,
		locks: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (g *MemoryGuard) TryAcquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expires, ok := g.locks[key]; ok && now.Before(expires) {
		return false, nil
	}
	// Drop expired locks while we hold the mutex anyway
	for k, expires := range g.locks {
		if !now.Before(expires) {
			delete(g.locks, k)
		}
	}
	g.locks[key] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
	return nil
}

// RedisGuard shares locks across server replicas with SET NX.
type RedisGuard struct {
	client *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisGuard(client *goredis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl, prefix: "inflight:"}
}

func (g *RedisGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis inflight acquire failed: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis inflight release failed: %w", err)
	}
	return nil
}
