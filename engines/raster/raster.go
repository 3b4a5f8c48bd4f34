// Package raster provides the default in-process engine. It keeps the
// image as raw bytes and re-emits them on Read; the transformation math
// lives in the request-handling layer, not here.
package raster

import (
	"errors"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Engines.Register("raster", &Factory{})
}

// Factory creates raster engines. It holds no process-wide resources, so
// Cleanup has nothing to release.
type Factory struct{}

// New returns a fresh engine for one request.
func (f *Factory) New(_ *core.Context) (core.Engine, error) {
	return &engine{}, nil
}

// Cleanup implements core.EngineFactory.
func (f *Factory) Cleanup() error { return nil }

type engine struct {
	blob []byte
}

func (e *engine) Load(blob []byte) error {
	if len(blob) == 0 {
		return errors.New("raster: empty image")
	}
	e.blob = blob
	return nil
}

func (e *engine) Read(_ string, _ int) ([]byte, error) {
	if e.blob == nil {
		return nil, errors.New("raster: no image loaded")
	}
	return e.blob, nil
}
