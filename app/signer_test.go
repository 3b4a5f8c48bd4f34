package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignIsDeterministic(t *testing.T) {
	first := Sign("MY_SECURE_KEY", "300x200/some/image.jpg")
	second := Sign("MY_SECURE_KEY", "300x200/some/image.jpg")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestSignDependsOnKeyAndPath(t *testing.T) {
	base := Sign("MY_SECURE_KEY", "300x200/some/image.jpg")
	assert.NotEqual(t, base, Sign("OTHER_KEY", "300x200/some/image.jpg"))
	assert.NotEqual(t, base, Sign("MY_SECURE_KEY", "300x200/other/image.jpg"))
}

func TestValidSignature(t *testing.T) {
	sig := Sign("MY_SECURE_KEY", "unsafe-path.jpg")
	assert.True(t, ValidSignature("MY_SECURE_KEY", sig, "unsafe-path.jpg"))
	assert.False(t, ValidSignature("MY_SECURE_KEY", sig, "tampered.jpg"))
	assert.False(t, ValidSignature("MY_SECURE_KEY", "bogus", "unsafe-path.jpg"))
	assert.False(t, ValidSignature("WRONG_KEY", sig, "unsafe-path.jpg"))
}
