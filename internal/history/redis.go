package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the history list when no key is configured.
const DefaultRedisKey = "devkit:cron:history"

const redisTxRetries = 5

// RedisStore keeps entries as a JSON-encoded redis list, newest at index 0.
type RedisStore struct {
	client *redis.Client
	key    string
	limit  int
}

func NewRedisStore(redisURL string, key string, limit int) (*RedisStore, error) {
	url := strings.TrimSpace(redisURL)
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return newRedisStore(client, key, limit), nil
}

func newRedisStore(client *redis.Client, key string, limit int) *RedisStore {
	k := strings.TrimSpace(key)
	if k == "" {
		k = DefaultRedisKey
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &RedisStore{client: client, key: k, limit: limit}
}

type lranger interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

func (s *RedisStore) Load(ctx context.Context) ([]Entry, error) {
	return s.load(ctx, s.client)
}

func (s *RedisStore) load(ctx context.Context, c lranger) ([]Entry, error) {
	raw, err := c.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("parse history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisStore) Append(ctx context.Context, e Entry) ([]Entry, error) {
	var out []Entry
	err := s.rewrite(ctx, func(entries []Entry) []Entry {
		out = Push(entries, e, s.limit)
		return out
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return s.rewrite(ctx, func(entries []Entry) []Entry {
		return Remove(entries, id)
	})
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// rewrite replaces the list under WATCH so concurrent writers retry
// instead of interleaving.
func (s *RedisStore) rewrite(ctx context.Context, fn func([]Entry) []Entry) error {
	txf := func(tx *redis.Tx) error {
		entries, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		next := fn(entries)
		payload := make([]any, 0, len(next))
		for _, e := range next {
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			payload = append(payload, string(data))
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.key)
			if len(payload) > 0 {
				pipe.RPush(ctx, s.key, payload...)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s: too many concurrent writers", s.key)
}
