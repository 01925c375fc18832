package configs

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects the key-value side-store holding the maintenance
// flag, the payment-mode cache and refresh tokens.
func OpenRedis() (*redis.Client, error) {
	dbNum := 0
	if LoadENV.RedisDB != "" {
		n, err := strconv.Atoi(LoadENV.RedisDB)
		if err == nil {
			dbNum = n
		}
	}

	addr := LoadENV.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: LoadENV.RedisPassword,
		DB:       dbNum,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Println("✅ Redis connection successful!")
	return client, nil
}
