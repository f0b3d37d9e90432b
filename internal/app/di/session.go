// Package di builds repository implementations from the available infrastructure.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	useradapters "diet_backend/internal/feature/users/adapters"
	"diet_backend/internal/feature/users/usecase"
	"diet_backend/internal/platform/cache"
)

// NewUserRepository creates the UserRepository used by the user endpoints
// and the session guard.
// If Redis is available, session lookups go through a Redis cache.
// Otherwise, every lookup hits the database.
func NewUserRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.UserRepository {
	repo := useradapters.NewUserGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingUserRepository(rdb, ttl, repo, "session")
}
