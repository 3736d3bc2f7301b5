package mock

import (
	"log"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
	redisOnce   sync.Once
)

// NewRedis starts an in-process redis server and returns a client
// connected to it. The same instance is reused for the whole suite.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			log.Fatalf("failed to start miniredis: %v", err)
		}
		redisServer = server
		redisClient = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisClient
}

// FlushRedis clears all keys between scenarios.
func FlushRedis() {
	if redisServer != nil {
		redisServer.FlushAll()
	}
}
