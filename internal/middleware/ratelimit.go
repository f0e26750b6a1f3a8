package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"

	"voicebox/internal/metrics"
)

// Store counts hits per key inside a fixed window. The counter and its
// window reset together when the window expires (reset-on-expiry, not a
// sliding window). Implementations must make increment-then-compare
// atomic per key.
type Store interface {
	Hit(key string) (count int, retryAfter time.Duration)
}

// CacheStore is the default Store, backed by an expiring in-memory
// cache. The entry's TTL is the window: expiry clears both count and
// window at once.
type CacheStore struct {
	c      *cache.Cache
	window time.Duration
}

func NewCacheStore(window time.Duration) *CacheStore {
	return &CacheStore{
		c:      cache.New(window, window),
		window: window,
	}
}

func (s *CacheStore) Hit(key string) (int, time.Duration) {
	// Add is a no-op when the key exists, so the expiry set on first
	// hit defines the whole window.
	s.c.Add(key, 0, s.window)
	count, err := s.c.IncrementInt(key, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a new window.
		s.c.Set(key, 1, s.window)
		count = 1
	}

	retryAfter := s.window
	if _, expiry, ok := s.c.GetWithExpiration(key); ok && !expiry.IsZero() {
		retryAfter = time.Until(expiry)
	}
	return count, retryAfter
}

// RateLimiter enforces a per-client-IP fixed-window limit. A request
// over the limit is rejected with 429 and has no side effects.
func RateLimiter(store Store, max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, retryAfter := store.Hit(c.IP())
		if count > max {
			log.Printf("🚫 [RATE-LIMIT] Limit reached for IP: %s (%d/%d)", c.IP(), count, max)
			metrics.CountRateLimited()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests. Please slow down.",
				"retry_after": int(retryAfter.Seconds()),
			})
		}
		return c.Next()
	}
}
