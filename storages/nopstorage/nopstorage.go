// Package nopstorage is the storage used when persistence is disabled.
// Put discards, Get always misses.
package nopstorage

import (
	"context"
	"fmt"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Storages.Register("noop", &Factory{})
}

// Factory creates no-op storages.
type Factory struct{}

// New returns the no-op storage.
func (f *Factory) New(_ *core.Context) (core.Storage, error) {
	return storage{}, nil
}

type storage struct{}

func (storage) Put(context.Context, string, []byte) error {
	return nil
}

func (storage) Get(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("nopstorage: %q not found", key)
}
