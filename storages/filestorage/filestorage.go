// Package filestorage persists blobs under file_storage_root, one file
// per key. Keys are hashed into the filename so arbitrary URLs stay
// filesystem-safe.
package filestorage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Storages.Register("file", &Factory{})
}

// Factory creates file storages.
type Factory struct{}

// New returns a storage rooted at the configured directory, creating it
// if needed.
func (f *Factory) New(ctx *core.Context) (core.Storage, error) {
	root := ctx.Config.FileStorageRoot
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestorage: creating root %q: %w", root, err)
	}
	return &storage{root: root}, nil
}

type storage struct {
	root string
}

func (s *storage) path(key string) string {
	sum := sha1.Sum([]byte(key))
	name := hex.EncodeToString(sum[:])
	// Two-level fanout keeps directories small.
	return filepath.Join(s.root, name[:2], name)
}

func (s *storage) Put(_ context.Context, key string, blob []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("filestorage: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("filestorage: writing %q: %w", key, err)
	}
	return nil
}

func (s *storage) Get(_ context.Context, key string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("filestorage: reading %q: %w", key, err)
	}
	return blob, nil
}
