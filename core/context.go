package core

import (
	"fmt"

	"go.uber.org/zap"

	"imgd/config"
)

// Context aggregates the server parameters, the configuration and the
// resolved components into the one object every request handler receives.
// It is immutable after NewContext returns.
type Context struct {
	Params  ServerParameters
	Config  *config.Config
	Modules *Components
	Metrics Metrics
	Logger  *zap.SugaredLogger
}

// NewContext builds the execution context. It performs no I/O; the only
// failure mode is the metrics constructor.
func NewContext(params ServerParameters, cfg *config.Config, modules *Components, logger *zap.SugaredLogger) (*Context, error) {
	ctx := &Context{
		Params:  params,
		Config:  cfg,
		Modules: modules,
		Logger:  logger,
	}
	if modules != nil && modules.Metrics != nil {
		m, err := modules.Metrics(cfg)
		if err != nil {
			return nil, fmt.Errorf("constructing metrics: %w", err)
		}
		ctx.Metrics = m
	}
	return ctx, nil
}
