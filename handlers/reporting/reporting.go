// Package reporting is the built-in custom error handler: it logs the
// failure with request context and counts it in the metrics sink. It is
// only constructed when use_custom_error_handling is set.
package reporting

import (
	"net/http"

	"imgd/config"
	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.ErrorHandlers.Register("reporting", New)
}

// New constructs the handler; it conforms to core.ErrorHandlerFactory.
func New(_ *config.Config) (core.ErrorHandler, error) {
	return &handler{}, nil
}

type handler struct{}

func (h *handler) Handle(ctx *core.Context, err error, w http.ResponseWriter, r *http.Request) {
	if ctx.Logger != nil {
		ctx.Logger.Errorw("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
	}
	if ctx.Metrics != nil {
		ctx.Metrics.Incr("error_handler.invocations", 1)
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
