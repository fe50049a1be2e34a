package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const blogCacheTTL = 10 * time.Minute

// Cache wraps the Redis client used for blog-list caching. A nil client
// disables caching; every method degrades to a miss or a no-op, so the
// server runs fine without Redis.
type Cache struct {
	client *redis.Client
}

// NewCache creates a Cache over the given client, which may be nil.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// InitRedis connects to Redis at addr (host:port or redis:// URL). A failed
// connection logs a warning and returns nil so callers continue uncached.
func InitRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		return nil
	}
	return client
}

// Get retrieves a cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a JSON-encoded value under key.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, encoded, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

// InvalidateUserBlogs drops the cached blog lists for a user, including the
// title-filtered variants.
func (c *Cache) InvalidateUserBlogs(ctx context.Context, userID uint) {
	if c.client == nil {
		return
	}
	_ = c.Delete(ctx, userBlogsKey(userID))
	pattern := fmt.Sprintf("user:%d:blogs:title:*", userID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

func userBlogsKey(userID uint) string {
	return fmt.Sprintf("user:%d:blogs", userID)
}

func userBlogsTitleKey(userID uint, title string) string {
	return fmt.Sprintf("user:%d:blogs:title:%s", userID, title)
}

func userBlogKey(userID uint, blogID string) string {
	return fmt.Sprintf("user:%d:blog:%s", userID, blogID)
}
