// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"diet_backend/internal/feature/users/domain/entity"
	"diet_backend/internal/feature/users/usecase"
)

// CachingUserRepository decorates a UserRepository with a Redis cache for
// session lookups, the query the session guard runs on every meal request.
// Only FindBySessionID is cached; other calls pass straight through.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "session".
// A nil rdb disables caching.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "session"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the user and drops any cached resolution of its token.
// A reused token keeps resolving to the earliest user, but the stale entry
// is removed anyway so the next lookup reflects the database.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := c.inner.Create(ctx, user); err != nil {
		return err
	}
	if c.rdb == nil || user.SessionID == nil || *user.SessionID == "" {
		return nil
	}
	// Best effort: the entry expires on its own if deletion fails
	if err := c.rdb.Del(ctx, c.cacheKey(*user.SessionID)).Err(); err != nil {
		slog.Warn("session cache invalidation failed", "error", err)
	}
	return nil
}

// List passes through to the underlying repository.
func (c *CachingUserRepository) List(ctx context.Context) ([]entity.User, error) {
	return c.inner.List(ctx)
}

// FindByID passes through to the underlying repository.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return c.inner.FindByID(ctx, id)
}

// FindBySessionID checks the cache first and falls back to the database.
// Misses are not cached so a token becomes valid as soon as its user exists.
func (c *CachingUserRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.User, error) {
	if c.rdb == nil || sessionID == "" {
		return c.inner.FindBySessionID(ctx, sessionID)
	}

	key := c.cacheKey(sessionID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// cacheKey generates the cache key for a session token.
func (c *CachingUserRepository) cacheKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", c.namespace, sessionID)
}
