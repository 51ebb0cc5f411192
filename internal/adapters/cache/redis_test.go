package cache

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unity-app/unity-engine/internal/config"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestRedisClient_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	db, _ := strconv.Atoi(getEnv("REDIS_TEST_DB", "1"))
	rdb, err := NewRedisClient(config.RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()

	require.NoError(t, rdb.FlushDB(ctx).Err(), "Failed to flush test DB")

	t.Run("Connection Ping", func(t *testing.T) {
		pong, err := rdb.Ping(ctx).Result()
		assert.NoError(t, err)
		assert.Equal(t, "PONG", pong)
	})

	t.Run("Expired keys read as redis.Nil", func(t *testing.T) {
		key := "reports:expiring"
		require.NoError(t, rdb.Set(ctx, key, "{}", time.Second).Err())

		time.Sleep(1100 * time.Millisecond)

		_, err := rdb.Get(ctx, key).Result()
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("Rate limiter counters", func(t *testing.T) {
		key := "rate_limit:test"
		for i := 1; i <= 3; i++ {
			n, err := rdb.Incr(ctx, key).Result()
			require.NoError(t, err)
			assert.Equal(t, int64(i), n)
		}
		rdb.Del(ctx, key)
	})
}
