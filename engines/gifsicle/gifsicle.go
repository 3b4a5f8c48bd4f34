// Package gifsicle provides the optional animated-image engine backed by
// the external gifsicle binary. The binary's absolute path is resolved by
// the pre-flight validator and arrives via the server parameters; this
// package never searches PATH itself.
package gifsicle

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Engines.Register("gifsicle", &Factory{})
}

// Factory creates gifsicle engines. Engines spill frames into a shared
// temp directory; Cleanup removes it on shutdown.
type Factory struct {
	mu      sync.Mutex
	tempDir string
}

// New returns an engine bound to the validated binary path.
func (f *Factory) New(ctx *core.Context) (core.Engine, error) {
	if ctx == nil || ctx.Params.GifsiclePath == "" {
		return nil, errors.New("gifsicle: binary path not resolved")
	}
	dir, err := f.ensureTempDir()
	if err != nil {
		return nil, err
	}
	return &engine{binary: ctx.Params.GifsiclePath, tempDir: dir}, nil
}

// Cleanup removes the shared temp directory. It runs once, on
// interruption, before the process exits.
func (f *Factory) Cleanup() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(f.tempDir)
	f.tempDir = ""
	return err
}

func (f *Factory) ensureTempDir() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tempDir != "" {
		return f.tempDir, nil
	}
	dir, err := os.MkdirTemp("", "imgd-gifsicle-")
	if err != nil {
		return "", fmt.Errorf("gifsicle: creating temp dir: %w", err)
	}
	f.tempDir = dir
	return dir, nil
}

type engine struct {
	binary  string
	tempDir string
	src     string
}

func (e *engine) Load(blob []byte) error {
	if len(blob) == 0 {
		return errors.New("gifsicle: empty image")
	}
	f, err := os.CreateTemp(e.tempDir, "src-*.gif")
	if err != nil {
		return fmt.Errorf("gifsicle: staging source: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(blob); err != nil {
		return fmt.Errorf("gifsicle: staging source: %w", err)
	}
	e.src = f.Name()
	return nil
}

func (e *engine) Read(_ string, _ int) ([]byte, error) {
	if e.src == "" {
		return nil, errors.New("gifsicle: no image loaded")
	}
	out := filepath.Join(e.tempDir, filepath.Base(e.src)+".out")
	cmd := exec.Command(e.binary, "--no-warnings", "-o", out, e.src)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("gifsicle: %w: %s", err, stderr.String())
	}
	return os.ReadFile(out)
}
