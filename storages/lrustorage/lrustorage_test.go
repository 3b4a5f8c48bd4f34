package lrustorage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgd/config"
	"imgd/core"
)

func testContext(size int) *core.Context {
	return &core.Context{Config: &config.Config{LRUStorageSize: size}}
}

func TestPutThenGet(t *testing.T) {
	storage, err := (&Factory{}).New(testContext(8))
	require.NoError(t, err)

	require.NoError(t, storage.Put(context.Background(), "some/image.jpg", []byte("blob")))
	blob, err := storage.Get(context.Background(), "some/image.jpg")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(blob))
}

func TestGetMissingKey(t *testing.T) {
	storage, err := (&Factory{}).New(testContext(8))
	require.NoError(t, err)

	_, err = storage.Get(context.Background(), "never/stored.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"never/stored.jpg" not found`)
}

func TestBoundEvictsOldestEntries(t *testing.T) {
	storage, err := (&Factory{}).New(testContext(2))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("image-%d.jpg", i)
		require.NoError(t, storage.Put(context.Background(), key, []byte(key)))
	}

	_, err = storage.Get(context.Background(), "image-0.jpg")
	assert.Error(t, err, "oldest entry should have been evicted")

	blob, err := storage.Get(context.Background(), "image-2.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image-2.jpg", string(blob))
}

func TestCacheIsSharedAcrossInstances(t *testing.T) {
	factory := &Factory{}

	first, err := factory.New(testContext(8))
	require.NoError(t, err)
	second, err := factory.New(testContext(8))
	require.NoError(t, err)

	require.NoError(t, first.Put(context.Background(), "shared.jpg", []byte("blob")))
	blob, err := second.Get(context.Background(), "shared.jpg")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(blob))
}

func TestNonPositiveSizeFallsBackToDefault(t *testing.T) {
	storage, err := (&Factory{}).New(testContext(0))
	require.NoError(t, err)

	require.NoError(t, storage.Put(context.Background(), "some/image.jpg", []byte("blob")))
	_, err = storage.Get(context.Background(), "some/image.jpg")
	assert.NoError(t, err)
}
