package core

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// LoginLimiter counts login attempts per email in a rolling window backed
// by Redis. A nil limiter allows everything, so the feature stays optional.
type LoginLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewLoginLimiter(client *redis.Client, window time.Duration, max int) *LoginLimiter {
	return &LoginLimiter{client: client, window: window, max: max}
}

// Allow records one attempt for email and reports whether it is within the
// per-window budget. The counter and its expiry are set atomically; when
// Redis is unreachable the limiter fails open so logins are never blocked
// by an infra outage.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil || l.max <= 0 {
		return true
	}

	// Lua script:
	// local n=redis.call('INCR', KEYS[1]); if n == 1 then redis.call('PEXPIRE', KEYS[1], ARGV[1]) end; return n
	script := redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)
	key := "login_attempts:" + email
	n, err := script.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return true
	}
	return n <= int64(l.max)
}
