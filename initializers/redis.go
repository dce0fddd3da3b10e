package initializers

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient caches the taxonomy reference data (categories, document types,
// subjects). It is optional: when REDIS_ADDR is unset the client stays nil
// and every lookup falls through to Postgres.
var RedisClient *redis.Client

// TaxonomyCacheTTL bounds staleness of cached dropdown enumerations.
const TaxonomyCacheTTL = 5 * time.Minute

func InitRedis(addr string) error {
	if addr == "" {
		log.Println("REDIS_ADDR not set, taxonomy cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}
	RedisClient = client
	log.Println("Redis taxonomy cache ready:", addr)
	return nil
}
