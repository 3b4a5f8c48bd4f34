// Package redisstorage persists blobs in Redis. Blobs are wrapped in a
// msgpack envelope carrying the store time so operators can reason about
// staleness without a second key.
package redisstorage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Storages.Register("redis", &Factory{})
}

// Factory creates redis storages backed by one shared client. New runs
// concurrently from request handlers, so the client is built once.
type Factory struct {
	once   sync.Once
	client *redis.Client
}

// New returns a storage connected per redis_storage_* settings.
func (f *Factory) New(ctx *core.Context) (core.Storage, error) {
	f.once.Do(func() {
		if f.client == nil {
			f.client = redis.NewClient(&redis.Options{
				Addr:     ctx.Config.RedisStorageAddr,
				Password: ctx.Config.RedisStoragePassword,
				DB:       ctx.Config.RedisStorageDB,
			})
		}
	})
	return &storage{client: f.client}, nil
}

type envelope struct {
	Blob     []byte    `msgpack:"blob"`
	StoredAt time.Time `msgpack:"stored_at"`
}

type storage struct {
	client *redis.Client
}

func (s *storage) Put(ctx context.Context, key string, blob []byte) error {
	payload, err := msgpack.Marshal(envelope{Blob: blob, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("redisstorage: encoding %q: %w", key, err)
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redisstorage: writing %q: %w", key, err)
	}
	return nil
}

func (s *storage) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("redisstorage: reading %q: %w", key, err)
	}
	var env envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("redisstorage: decoding %q: %w", key, err)
	}
	return env.Blob, nil
}
