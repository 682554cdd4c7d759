package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"strings"
	"time"
)

var Nil = redis.Nil

type IRedis interface {
	// ConsumeRateLimit atomically increments the fixed-window counter for
	// clientID and returns the count after the increment. The first request
	// in a window arms the window's expiry.
	ConsumeRateLimit(ctx context.Context, clientID string, window time.Duration) (int64, error)
	GetCachedResult(ctx context.Context, sessionID string, command string) (string, error)
	SetCachedResult(ctx context.Context, sessionID string, command string, payload string, expiration time.Duration) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) ConsumeRateLimit(ctx context.Context, clientID string, window time.Duration) (int64, error) {
	key := rateLimitKey(clientID)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error incrementing rate limit for %s: %v", key, err))
		return 0, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			logrus.Error(fmt.Sprintf("Error arming rate limit window for %s: %v", key, err))
			return count, err
		}
	}

	return count, nil
}

func (r *redisClient) GetCachedResult(ctx context.Context, sessionID string, command string) (string, error) {
	key := cacheKey(sessionID, command)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading cached result for %s: %v", key, err))
		return "", err
	}

	logrus.Debug(fmt.Sprintf("Cache hit for %s", key))
	return val, nil
}

func (r *redisClient) SetCachedResult(ctx context.Context, sessionID string, command string, payload string, expiration time.Duration) error {
	key := cacheKey(sessionID, command)

	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching result for %s: %v", key, err))
		return err
	}
	return nil
}

func rateLimitKey(clientID string) string {
	return fmt.Sprintf("rate_limit:%s", clientID)
}

// cacheKey normalizes the command (lowercase, trimmed) and falls back to an
// anonymous bucket when no session id was supplied.
func cacheKey(sessionID string, command string) string {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = "anon"
	}
	return fmt.Sprintf("cache:%s:%s", sessionID, strings.ToLower(strings.TrimSpace(command)))
}
