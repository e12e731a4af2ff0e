package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis pairs an in-process miniredis server with a client pointed at it.
// The server is exposed so scenarios can move its clock.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var (
	redisOnce sync.Once
	shared    *Redis
)

// NewRedis returns the shared rate-limiter store for the integration suite.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis. err: " + err.Error())
		}
		shared = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return shared
}

// Clear drops every key, including rate-limit windows.
func (r *Redis) Clear(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
