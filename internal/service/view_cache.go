package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// ViewCache holds the last fetched turno list per user so mutations can patch
// it through the domain reducers instead of forcing a re-fetch.
type ViewCache interface {
	GetTurnos(ctx context.Context, key string) ([]domain.TurnoCompleto, bool)
	SetTurnos(ctx context.Context, key string, turnos []domain.TurnoCompleto)
	Invalidate(ctx context.Context, key string)
}

// TurnosKey names the cached list for one role's view of one subject.
func TurnosKey(role domain.Role, subjectID int) string {
	return fmt.Sprintf("%s:%d", role, subjectID)
}

// redisViewCache stores lists as JSON values with a short TTL.
type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisViewCache returns a Redis-backed ViewCache.
func NewRedisViewCache(client *redis.Client, ttl time.Duration) ViewCache {
	return &redisViewCache{client: client, ttl: ttl}
}

func viewKey(key string) string {
	return "portal:view:turnos:" + key
}

func (c *redisViewCache) GetTurnos(ctx context.Context, key string) ([]domain.TurnoCompleto, bool) {
	raw, err := c.client.Get(ctx, viewKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var turnos []domain.TurnoCompleto
	if err := json.Unmarshal(raw, &turnos); err != nil {
		return nil, false
	}
	return turnos, true
}

func (c *redisViewCache) SetTurnos(ctx context.Context, key string, turnos []domain.TurnoCompleto) {
	raw, err := json.Marshal(turnos)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, viewKey(key), raw, c.ttl).Err()
}

func (c *redisViewCache) Invalidate(ctx context.Context, key string) {
	_ = c.client.Del(ctx, viewKey(key)).Err()
}

// memoryViewCache is the in-process fallback used by tests and deployments
// without Redis.
type memoryViewCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	turnos    []domain.TurnoCompleto
	expiresAt time.Time
}

// NewMemoryViewCache returns an in-process ViewCache.
func NewMemoryViewCache(ttl time.Duration) ViewCache {
	return &memoryViewCache{ttl: ttl, data: make(map[string]memoryCacheEntry)}
}

func (c *memoryViewCache) GetTurnos(_ context.Context, key string) ([]domain.TurnoCompleto, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.turnos, true
}

func (c *memoryViewCache) SetTurnos(_ context.Context, key string, turnos []domain.TurnoCompleto) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryCacheEntry{turnos: turnos, expiresAt: time.Now().Add(c.ttl)}
}

func (c *memoryViewCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}
