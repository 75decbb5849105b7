package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/gymbooking/config"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	sessionsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionsTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, sessionsTTL time.Duration) *RedisCache {
	if sessionsTTL <= 0 {
		sessionsTTL = 30 * time.Second
	}
	return &RedisCache{client: client, sessionsTTL: sessionsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetAvailableSessions reads the list cached for the current generation.
// The generation is returned on a miss too: pass it to SetAvailableSessions
// so a list read before an invalidation lands under a key nobody reads.
func (c *RedisCache) GetAvailableSessions(ctx context.Context) ([]domain.ClassSession, int64, bool, error) {
	gen, err := c.client.Get(ctx, sessionsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, availableSessionsKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		return nil, 0, false, err
	}

	var sessions []domain.ClassSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, 0, false, err
	}
	return sessions, gen, true, nil
}

func (c *RedisCache) SetAvailableSessions(ctx context.Context, gen int64, sessions []domain.ClassSession) error {
	if sessions == nil {
		sessions = []domain.ClassSession{}
	}
	payload, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availableSessionsKey(gen), payload, c.sessionsTTL).Err()
}

// InvalidateSessions bumps the generation. Lists cached under older
// generations expire with their TTL.
func (c *RedisCache) InvalidateSessions(ctx context.Context) error {
	return c.client.Incr(ctx, sessionsGenerationKey).Err()
}

// AcquireBookingLock marks a booking attempt of userID on sessionID as in
// flight. It reports false when another attempt holds the lock.
func (c *RedisCache) AcquireBookingLock(ctx context.Context, userID, sessionID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, bookingLockKey(userID, sessionID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseBookingLock(ctx context.Context, userID, sessionID string) error {
	return c.client.Del(ctx, bookingLockKey(userID, sessionID)).Err()
}

const sessionsGenerationKey = "cache:sessions:gen"

func availableSessionsKey(gen int64) string {
	return fmt.Sprintf("cache:sessions:available:%d", gen)
}

func bookingLockKey(userID, sessionID string) string {
	return fmt.Sprintf("lock:booking:%s:session:%s", userID, sessionID)
}
