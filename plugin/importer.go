package plugin

import (
	"fmt"

	"imgd/config"
	"imgd/core"
)

// Role registries. Component packages call Register from init; the
// importer only ever reads them.
var (
	Engines       = NewRegistry[core.EngineFactory]("engine")
	Loaders       = NewRegistry[core.LoaderFactory]("loader")
	Storages      = NewRegistry[core.StorageFactory]("storage")
	Detectors     = NewRegistry[core.DetectorFactory]("detector")
	Filters       = NewRegistry[core.Filter]("filter")
	ErrorHandlers = NewRegistry[core.ErrorHandlerFactory]("error handler")
	Metrics       = NewRegistry[core.MetricsFactory]("metrics")
)

// Resolve turns the configured component names into the resolved component
// set. Engine, loader, storages, detectors and metrics stay factories and
// are instantiated per request; the filter collection is imported eagerly;
// the error handler is constructed here, and only when custom error
// handling is enabled. Any name that does not resolve aborts startup;
// there is no partial or degraded resolution.
func Resolve(cfg *config.Config) (*core.Components, error) {
	modules := &core.Components{}

	var err error
	if modules.Engine, err = Engines.Lookup(cfg.Engine); err != nil {
		return nil, err
	}
	if modules.Loader, err = Loaders.Lookup(cfg.Loader); err != nil {
		return nil, err
	}
	if modules.Storage, err = Storages.Lookup(cfg.Storage); err != nil {
		return nil, err
	}
	if modules.ResultStorage, err = Storages.Lookup(cfg.ResultStorage); err != nil {
		return nil, err
	}
	if modules.Metrics, err = Metrics.Lookup(cfg.Metrics); err != nil {
		return nil, err
	}

	modules.Detectors = make([]core.DetectorFactory, 0, len(cfg.Detectors))
	for _, name := range cfg.Detectors {
		d, err := Detectors.Lookup(name)
		if err != nil {
			return nil, err
		}
		modules.Detectors = append(modules.Detectors, d)
	}

	// An empty or absent list is an empty but valid collection.
	modules.Filters = make([]core.Filter, 0, len(cfg.Filters))
	for _, name := range cfg.Filters {
		f, err := Filters.Lookup(name)
		if err != nil {
			return nil, err
		}
		modules.Filters = append(modules.Filters, f)
	}

	if cfg.UseCustomErrorHandling {
		factory, err := ErrorHandlers.Lookup(cfg.ErrorHandlerModule)
		if err != nil {
			return nil, err
		}
		handler, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("constructing error handler %q: %w", cfg.ErrorHandlerModule, err)
		}
		modules.ErrorHandler = handler
	}

	return modules, nil
}
