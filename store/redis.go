package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxWatchRetries bounds how often Update retries after a concurrent write
// invalidated its WATCH.
const maxWatchRetries = 3

// RedisStore keeps one hash per collection, field = document id,
// value = JSON-encoded document.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. Collection hashes are stored under
// "<prefix>:<collection>".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(collection string) string {
	if s.prefix == "" {
		return collection
	}
	return s.prefix + ":" + collection
}

func (s *RedisStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	raw, err := s.client.HGetAll(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, err
	}
	result := make([]Document, 0, len(raw))
	for id, v := range raw {
		data, err := decodeDocument([]byte(v))
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		result = append(result, Document{ID: id, Data: data})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	raw, err := s.client.HGet(ctx, s.key(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := decodeDocument([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return &Document{ID: id, Data: data}, nil
}

func (s *RedisStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	b, err := json.Marshal(merge(nil, data))
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.client.HSet(ctx, s.key(collection), id, string(b)).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	key := s.key(collection)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		doc, err := decodeDocument([]byte(raw))
		if err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		b, err := json.Marshal(merge(doc, fields))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, string(b))
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s/%s: too many concurrent writes", collection, id)
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	return s.client.HDel(ctx, s.key(collection), id).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
