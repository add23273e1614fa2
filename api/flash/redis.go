package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

const defaultTTL = 15 * time.Minute

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore backs the flash queue with redis, keyed per browser
// token. Messages expire unread after TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Push(ctx context.Context, token string, msg Message) error {
	key := s.client.FlashKey(token)

	msgs, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encoding flash messages: %w", err)
	}
	return s.client.Set(ctx, key, payload, s.ttl)
}

func (s *redisStore) Pop(ctx context.Context, token string) ([]Message, error) {
	key := s.client.FlashKey(token)

	msgs, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	if err := s.client.Del(ctx, key); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *redisStore) load(ctx context.Context, key string) ([]Message, error) {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var msgs []Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("decoding flash messages: %w", err)
	}
	return msgs, nil
}
