package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// LimiterStore counts attempts per key within a fixed window.
type LimiterStore interface {
	// Allow records an attempt and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Cleanup drops expired state.
	Cleanup()
	// Reset clears all state.
	Reset()
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store LimiterStore
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithStore(NewMemoryStore(defaultMaxAttempts, defaultWindowDuration))
}

// NewRateLimiterWithStore creates a rate limiter backed by the given store.
func NewRateLimiterWithStore(store LimiterStore) *RateLimiter {
	return &RateLimiter{store: store}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.store.Allow(c.Request.Context(), clientIP)
		if err != nil {
			// Fail open: a store outage must not lock everyone out.
			slog.Warn("Rate limiter store unavailable", "error", err)
			allowed = true
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Message: "Too many requests. Please try again later.",
				Code:    string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.store.Reset()
}

// Cleanup removes expired entries (can be called periodically to free memory).
func (rl *RateLimiter) Cleanup() {
	rl.store.Cleanup()
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryStore keeps attempt counters in process memory.
type MemoryStore struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(maxAttempts int, windowDuration time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Allow checks if a request from the given key should be allowed.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(s.windowDuration),
		}
		return true, nil
	}

	if entry.attempts < s.maxAttempts {
		entry.attempts++
		return true, nil
	}
	return false, nil
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// Reset clears every counter.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
}

// RedisStore shares attempt counters across API instances.
// Keys expire on their own, so Cleanup is a no-op.
type RedisStore struct {
	client         *redis.Client
	prefix         string
	maxAttempts    int
	windowDuration time.Duration
}

// NewRedisStore creates a Redis-backed store. Keys are namespaced by prefix.
func NewRedisStore(client *redis.Client, prefix string, maxAttempts int, windowDuration time.Duration) *RedisStore {
	return &RedisStore{
		client:         client,
		prefix:         prefix,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// allowScript increments the counter and starts its window whenever the key has
// no expiry, so a counter can never outlive its window.
var allowScript = redis.NewScript(`
local attempts = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return attempts
`)

// Allow increments the key's counter in one round trip.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	attempts, err := allowScript.Run(ctx, s.client, []string{s.prefix + key}, s.windowDuration.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return attempts <= int64(s.maxAttempts), nil
}

// Cleanup is a no-op; Redis expires keys.
func (s *RedisStore) Cleanup() {}

// Reset deletes every key under the prefix.
func (s *RedisStore) Reset() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Failed to reset rate limiter keys", "error", err)
	}
}
