// Package lrustorage keeps blobs in a bounded in-process LRU cache. It is
// meant for result storage on single-instance deployments where a restart
// losing the cache is acceptable.
package lrustorage

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Storages.Register("lru", &Factory{})
}

// Factory creates LRU storages. The cache is shared across requests so
// the configured bound is process-wide.
type Factory struct {
	once  sync.Once
	cache *lru.Cache[string, []byte]
	err   error
}

// New returns the shared LRU storage, sized by lru_storage_size.
func (f *Factory) New(ctx *core.Context) (core.Storage, error) {
	f.once.Do(func() {
		size := ctx.Config.LRUStorageSize
		if size <= 0 {
			size = 1024
		}
		f.cache, f.err = lru.New[string, []byte](size)
	})
	if f.err != nil {
		return nil, fmt.Errorf("lrustorage: %w", f.err)
	}
	return &storage{cache: f.cache}, nil
}

type storage struct {
	cache *lru.Cache[string, []byte]
}

func (s *storage) Put(_ context.Context, key string, blob []byte) error {
	s.cache.Add(key, blob)
	return nil
}

func (s *storage) Get(_ context.Context, key string) ([]byte, error) {
	blob, ok := s.cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("lrustorage: %q not found", key)
	}
	return blob, nil
}
