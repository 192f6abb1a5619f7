package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisRepository keeps sessions in Redis with native key expiry.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Put(ctx context.Context, rec Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("create session: expiry is in the past")
	}
	key := redisKeyPrefix + rec.Token
	if err := r.client.Set(ctx, key, strconv.FormatUint(uint64(rec.UserID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, token string) (*Record, error) {
	key := redisKeyPrefix + token
	pipe := r.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	userID, err := strconv.ParseUint(getCmd.Val(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("get session: corrupt record: %w", err)
	}
	return &Record{
		Token:     token,
		UserID:    uint(userID),
		ExpiresAt: time.Now().Add(ttlCmd.Val()),
	}, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (r *RedisRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
