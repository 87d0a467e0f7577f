package hafas

import (
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheExpiration = 24 * time.Hour

// NewRedisCache builds the response cache used by Client on top of a redis connection
func NewRedisCache(client *redis.Client, expiration time.Duration) *cache.Cache[string] {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return cache.New[string](redisStore)
}
