package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	once   sync.Once

	err error
)

// ConnectToRedisClient builds the process-wide client on first call and
// returns the same instance afterwards.
func ConnectToRedisClient(addr string) (*redis.Client, error) {
	once.Do(func() {
		log.Println("Connecting to Redis...")

		if addr == "" {
			err = fmt.Errorf("redis address not configured")
			log.Printf("%s", err)
			return
		}

		c := redis.NewClient(&redis.Options{
			Addr:         addr,
			PoolSize:     128,
			MinIdleConns: 16,
		})

		pingErr := c.Ping(context.Background()).Err()
		if pingErr != nil {
			err = fmt.Errorf("failed to connect to Redis at %s: %w", addr, pingErr)
			log.Printf("%s", err.Error())
			return
		}

		log.Println("Redis client connected")
		client = c
	})

	return client, err
}

func CloseRedisClient() {
	if client != nil {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
}
