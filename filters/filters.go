// Package filters holds the built-in filter set. Filters are discovered
// by name at startup and applied per request; the built-ins here exist to
// exercise the discovery contract; the imaging work behind them belongs
// to the request-handling layer.
package filters

import (
	"imgd/plugin"
)

func init() {
	plugin.Filters.Register("quality", filter{name: "quality"})
	plugin.Filters.Register("grayscale", filter{name: "grayscale"})
	plugin.Filters.Register("format", filter{name: "format"})
}

// filter is a pass-through implementation of core.Filter. Each built-in
// name resolves to its own instance so the collection preserves order and
// identity.
type filter struct {
	name string
}

func (f filter) Name() string { return f.name }

func (f filter) Apply(blob []byte, _ []string) ([]byte, error) {
	return blob, nil
}
