// Package app builds the request-routing application. Application classes
// are registered by name; the bootstrap resolves the class named in the
// server parameters and constructs it with the execution context.
package app

import (
	"net/http"

	"imgd/core"
	"imgd/plugin"
)

// Factory constructs an application from a fully built execution context.
type Factory func(ctx *core.Context) (http.Handler, error)

var registry = plugin.NewRegistry[Factory]("application class")

// Register makes an application class resolvable by name.
func Register(name string, factory Factory) {
	registry.Register(name, factory)
}

// New instantiates the application class named in the context's server
// parameters. Constructor errors propagate and abort startup.
func New(ctx *core.Context) (http.Handler, error) {
	factory, err := registry.Lookup(ctx.Params.AppClass)
	if err != nil {
		return nil, err
	}
	return factory(ctx)
}

func init() {
	Register(core.DefaultAppClass, NewImageServer)
}
