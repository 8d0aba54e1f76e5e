package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const RedisAntiForgeryKeyPrefix = "antiforgery:"

// AntiForgeryStore issues one request verification token per subject and
// checks submitted tokens against it.
type AntiForgeryStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewAntiForgeryStore(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *AntiForgeryStore {
	return &AntiForgeryStore{redisClient: redisClient, log: log, ttl: ttl}
}

// Issue creates a fresh token for subject, replacing any previous one.
func (s *AntiForgeryStore) Issue(ctx context.Context, subject string) (string, error) {
	token := uuid.NewString()
	if err := s.redisClient.Set(ctx, RedisAntiForgeryKeyPrefix+subject, token, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to store anti-forgery token: %+v", err)
		return "", fmt.Errorf("store anti-forgery token: %w", err)
	}
	return token, nil
}

// Verify reports whether token is the live token of subject.
func (s *AntiForgeryStore) Verify(ctx context.Context, subject, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	stored, err := s.redisClient.Get(ctx, RedisAntiForgeryKeyPrefix+subject).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		s.log.Warnf("Failed to read anti-forgery token: %+v", err)
		return false, fmt.Errorf("read anti-forgery token: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}
