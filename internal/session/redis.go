package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

const (
	keyPrefix      = "portal:session:"
	fieldToken     = "access_token"
	fieldTokenType = "token_type"
)

// redisStore persists sessions as Redis hashes with a sliding TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed Store.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *redisStore) Set(ctx context.Context, sessionID string, sess domain.Session) error {
	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldToken, sess.Token, fieldTokenType, sess.TokenType)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	key := sessionKey(sessionID)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return domain.Session{}, err
	}
	if len(fields) == 0 {
		return domain.Session{}, ErrNoSession
	}
	// Sliding expiry: activity keeps the portal session alive while the
	// backend token governs actual authorization.
	_ = s.client.Expire(ctx, key, s.ttl).Err()
	return domain.Session{
		Token:     fields[fieldToken],
		TokenType: fields[fieldTokenType],
	}, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *redisStore) Has(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
