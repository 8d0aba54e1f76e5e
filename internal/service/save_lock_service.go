package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// releaseLockScript deletes the lock only while it still holds our token, so
// a lock that expired and was taken by another request is left alone.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const RedisLockKeyPrefix = "lock:"

// RedisLocker is a per-key mutual exclusion lock held in Redis with a TTL.
type RedisLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisLocker(redisClient *redis.Client, log *logrus.Logger) *RedisLocker {
	return &RedisLocker{redisClient: redisClient, log: log}
}

// Acquire takes the lock for key. ok is false when another holder has it.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	lockKey := RedisLockKeyPrefix + key
	token := uuid.NewString()

	ok, err := l.redisClient.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire lock %s: %+v", lockKey, err)
		return nil, false, fmt.Errorf("acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), redisSlotTimeout)
		defer cancel()
		if err := releaseLockScript.Run(ctx, l.redisClient, []string{lockKey}, token).Err(); err != nil {
			l.log.Warnf("Failed to release lock %s: %+v", lockKey, err)
		}
	}
	return release, true, nil
}
