package core

import (
	"context"
	"net/http"
	"time"

	"imgd/config"
)

// Engine transforms one image. An instance is created per request from the
// factory held in Components; its internals are out of scope here.
type Engine interface {
	// Load hands the source bytes to the engine.
	Load(blob []byte) error
	// Read renders the current image in the requested format. A quality of
	// zero means the engine default.
	Read(format string, quality int) ([]byte, error)
}

// EngineFactory creates engines per request and owns any process-wide
// resources the engine family holds (temp directories, native handles).
// Cleanup runs exactly once, on interruption, before the process exits.
type EngineFactory interface {
	New(ctx *Context) (Engine, error)
	Cleanup() error
}

// Loader fetches source images by URL or path.
type Loader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// LoaderFactory creates loaders per request.
type LoaderFactory interface {
	New(ctx *Context) (Loader, error)
}

// Storage persists source or result blobs under a key.
type Storage interface {
	Put(ctx context.Context, key string, blob []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// StorageFactory creates storages per request.
type StorageFactory interface {
	New(ctx *Context) (Storage, error)
}

// FocalPoint is a detector result: a region of interest with a weight.
type FocalPoint struct {
	X      int
	Y      int
	Width  int
	Height int
	Weight float64
}

// Detector finds focal points in an image.
type Detector interface {
	Detect(ctx context.Context, blob []byte) ([]FocalPoint, error)
}

// DetectorFactory creates detectors per request.
type DetectorFactory interface {
	New(ctx *Context) (Detector, error)
}

// Filter is one post-processing step. Filters are resolved eagerly at
// startup; Apply runs per request with the arguments parsed from the URL.
type Filter interface {
	Name() string
	Apply(blob []byte, args []string) ([]byte, error)
}

// ErrorHandler reports request-handling failures. It is only present when
// custom error handling is enabled in the configuration, in which case a
// single instance is constructed at startup with the configuration.
type ErrorHandler interface {
	Handle(ctx *Context, err error, w http.ResponseWriter, r *http.Request)
}

// ErrorHandlerFactory constructs the error handler instance from the
// configuration.
type ErrorHandlerFactory func(cfg *config.Config) (ErrorHandler, error)

// Metrics counts and times service events.
type Metrics interface {
	Incr(name string, delta int)
	Timing(name string, d time.Duration)
}

// MetricsFactory constructs the metrics sink from the configuration.
type MetricsFactory func(cfg *config.Config) (Metrics, error)

// Components is the resolved component set. Every role is resolved exactly
// once per process lifetime; a role that fails to resolve aborts startup.
type Components struct {
	Engine        EngineFactory
	Loader        LoaderFactory
	Storage       StorageFactory
	ResultStorage StorageFactory
	Detectors     []DetectorFactory

	// Filters is the eagerly imported filter collection. An empty or absent
	// configured list yields an empty but valid collection.
	Filters []Filter

	// ErrorHandler is nil unless use_custom_error_handling is set.
	ErrorHandler ErrorHandler

	Metrics MetricsFactory
}
