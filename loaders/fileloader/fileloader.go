// Package fileloader loads source images from a directory tree rooted at
// file_loader_root. Paths that escape the root are rejected.
package fileloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Loaders.Register("file", &Factory{})
}

// Factory creates file loaders.
type Factory struct{}

// New returns a loader rooted at the configured directory.
func (f *Factory) New(ctx *core.Context) (core.Loader, error) {
	root := ctx.Config.FileLoaderRoot
	if root == "" {
		return nil, errors.New("fileloader: file_loader_root is not set")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("fileloader: resolving root: %w", err)
	}
	return &loader{root: abs}, nil
}

type loader struct {
	root string
}

func (l *loader) Load(_ context.Context, path string) ([]byte, error) {
	full := filepath.Join(l.root, filepath.Clean("/"+path))
	if full != l.root && !strings.HasPrefix(full, l.root+string(os.PathSeparator)) {
		return nil, fmt.Errorf("fileloader: path %q escapes the loader root", path)
	}
	blob, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("fileloader: reading %q: %w", path, err)
	}
	return blob, nil
}
