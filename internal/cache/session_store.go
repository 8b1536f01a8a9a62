package cache

import (
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore 登入 cookie 與使用者的對應，cookie 由認證服務發放
type SessionStore interface {
	// 建立：為使用者產生新的 session token
	Create(ctx context.Context, userID int64) (string, error)
	// 查詢：以 token 取得使用者，不存在或過期回傳 ErrUnauthorized
	Lookup(ctx context.Context, token string) (int64, error)
}

type RedisSessionStoreImpl struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	newToken func() string
}

func NewRedisSessionStore(client *redis.Client, prefix string, ttl time.Duration) SessionStore {
	return &RedisSessionStoreImpl{
		client:   client,
		prefix:   prefix,
		ttl:      ttl,
		newToken: func() string { return uuid.New().String() },
	}
}

// session key
func (s *RedisSessionStoreImpl) getKey(token string) string {
	return s.prefix + token
}

func (s *RedisSessionStoreImpl) Create(ctx context.Context, userID int64) (string, error) {
	token := s.newToken()
	err := s.client.Set(ctx, s.getKey(token), strconv.FormatInt(userID, 10), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisSessionStoreImpl) Lookup(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apperrors.ErrUnauthorized
	}

	userID, err := s.client.Get(ctx, s.getKey(token)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	return userID, nil
}
