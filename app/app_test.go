package app

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgd/core"
)

func TestNewResolvesDefaultApplicationClass(t *testing.T) {
	server, _ := testServer(t, nil)

	handler, err := New(server.ctx)
	require.NoError(t, err)
	assert.IsType(t, &ImageServer{}, handler)
}

func TestNewRejectsUnknownApplicationClass(t *testing.T) {
	server, _ := testServer(t, nil)
	ctx := *server.ctx
	ctx.Params.AppClass = "imgd.NoSuchServer"

	_, err := New(&ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown application class "imgd.NoSuchServer"`)
}

// The fixture registers once per process so repeated runs of the same
// binary do not trip the duplicate-registration guard.
var (
	seen             *core.Context
	registerRecorder = sync.OnceFunc(func() {
		Register("imgd.test.Recorder", func(ctx *core.Context) (http.Handler, error) {
			seen = ctx
			return http.NotFoundHandler(), nil
		})
	})
)

func TestRegisteredClassIsConstructedWithContext(t *testing.T) {
	registerRecorder()

	server, _ := testServer(t, nil)
	ctx := *server.ctx
	ctx.Params.AppClass = "imgd.test.Recorder"

	_, err := New(&ctx)
	require.NoError(t, err)
	assert.Same(t, server.ctx.Config, seen.Config)
}
