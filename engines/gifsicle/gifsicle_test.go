package gifsicle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgd/core"
)

func testContext(binary string) *core.Context {
	return &core.Context{Params: core.ServerParameters{GifsiclePath: binary}}
}

func TestNewRequiresResolvedBinaryPath(t *testing.T) {
	_, err := (&Factory{}).New(testContext(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary path not resolved")
}

func TestEnginesShareOneTempDir(t *testing.T) {
	factory := &Factory{}
	t.Cleanup(func() { _ = factory.Cleanup() })

	first, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)
	second, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)

	assert.Equal(t, first.(*engine).tempDir, second.(*engine).tempDir)
	assert.True(t, strings.Contains(first.(*engine).tempDir, "imgd-gifsicle-"))
}

func TestLoadStagesSourceInTempDir(t *testing.T) {
	factory := &Factory{}
	t.Cleanup(func() { _ = factory.Cleanup() })

	eng, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)
	require.NoError(t, eng.Load([]byte("GIF89a...")))

	src := eng.(*engine).src
	assert.Equal(t, eng.(*engine).tempDir, filepath.Dir(src))
	blob, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a...", string(blob))
}

func TestLoadRejectsEmptyImage(t *testing.T) {
	factory := &Factory{}
	t.Cleanup(func() { _ = factory.Cleanup() })

	eng, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)
	assert.Error(t, eng.Load(nil))
}

func TestCleanupRemovesTempDir(t *testing.T) {
	factory := &Factory{}

	eng, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)
	dir := eng.(*engine).tempDir

	require.NoError(t, factory.Cleanup())
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	// Idempotent: a second Cleanup finds nothing to release.
	assert.NoError(t, factory.Cleanup())
}

func TestReadBeforeLoad(t *testing.T) {
	factory := &Factory{}
	t.Cleanup(func() { _ = factory.Cleanup() })

	eng, err := factory.New(testContext("/usr/bin/gifsicle"))
	require.NoError(t, err)

	_, err = eng.Read("", 0)
	assert.Error(t, err)
}
