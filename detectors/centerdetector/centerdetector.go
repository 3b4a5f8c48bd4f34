// Package centerdetector is the fallback detector: it reports a single
// focal point covering the whole image, weighted at the center. Smarter
// detectors register under their own names and replace it per
// configuration.
package centerdetector

import (
	"context"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Detectors.Register("center", &Factory{})
}

// Factory creates center detectors.
type Factory struct{}

// New returns a detector for one request.
func (f *Factory) New(_ *core.Context) (core.Detector, error) {
	return detector{}, nil
}

type detector struct{}

func (detector) Detect(_ context.Context, blob []byte) ([]core.FocalPoint, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	return []core.FocalPoint{{X: 0, Y: 0, Width: 0, Height: 0, Weight: 1}}, nil
}
