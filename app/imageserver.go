package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"imgd/core"
)

// ImageServer is the default application: a mux router serving the
// health check, the metrics endpoint and the signed image route. The
// transformation pipeline behind the image route is the request-handling
// layer's concern; this application wires it to the resolved components.
type ImageServer struct {
	ctx    *core.Context
	router *mux.Router
}

// NewImageServer constructs the default application; it conforms to
// Factory.
func NewImageServer(ctx *core.Context) (http.Handler, error) {
	s := &ImageServer{
		ctx:    ctx,
		router: mux.NewRouter(),
	}

	s.router.HandleFunc("/healthcheck", s.handleHealthcheck).Methods(http.MethodGet, http.MethodHead)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/unsafe/{path:.*}", s.handleImage).Methods(http.MethodGet)
	s.router.HandleFunc("/{signature}/{path:.*}", s.handleImage).Methods(http.MethodGet)

	s.router.Use(requestIDMiddleware)
	return s, nil
}

func (s *ImageServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *ImageServer) handleHealthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "WORKING")
}

func (s *ImageServer) handleImage(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	vars := mux.Vars(r)
	path := vars["path"]

	if signature, signed := vars["signature"]; signed {
		if !ValidSignature(s.ctx.Params.SecurityKey, signature, path) {
			s.count("requests.unauthorized")
			http.Error(w, "invalid request signature", http.StatusForbidden)
			return
		}
	}

	blob, err := s.fetch(r, path)
	if err != nil {
		s.count("requests.failed")
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(blob))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)

	s.count("requests.ok")
	if s.ctx.Metrics != nil {
		s.ctx.Metrics.Timing("requests.duration", time.Since(started))
	}
}

// fetch runs the minimal pipeline: result storage, loader, engine,
// filters, store.
func (s *ImageServer) fetch(r *http.Request, path string) ([]byte, error) {
	modules := s.ctx.Modules

	if result, err := mustStorage(modules.ResultStorage, s.ctx); err == nil {
		if blob, err := result.Get(r.Context(), path); err == nil {
			s.count("result_storage.hit")
			return blob, nil
		}
		s.count("result_storage.miss")
	}

	loader, err := modules.Loader.New(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("constructing loader: %w", err)
	}
	blob, err := loader.Load(r.Context(), path)
	if err != nil {
		return nil, err
	}

	engine, err := modules.Engine.New(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("constructing engine: %w", err)
	}
	if err := engine.Load(blob); err != nil {
		return nil, err
	}
	out, err := engine.Read("", 0)
	if err != nil {
		return nil, err
	}

	for _, f := range modules.Filters {
		if out, err = f.Apply(out, nil); err != nil {
			return nil, fmt.Errorf("filter %q: %w", f.Name(), err)
		}
	}

	if result, err := mustStorage(modules.ResultStorage, s.ctx); err == nil {
		_ = result.Put(r.Context(), path, out)
	}
	return out, nil
}

func (s *ImageServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	if s.ctx.Modules.ErrorHandler != nil {
		s.ctx.Modules.ErrorHandler.Handle(s.ctx, err, w, r)
		return
	}
	if s.ctx.Logger != nil {
		s.ctx.Logger.Errorw("request failed", "error", err, "path", r.URL.Path)
	}
	http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
}

func (s *ImageServer) count(name string) {
	if s.ctx.Metrics != nil {
		s.ctx.Metrics.Incr(name, 1)
	}
}

func mustStorage(factory core.StorageFactory, ctx *core.Context) (core.Storage, error) {
	if factory == nil {
		return nil, fmt.Errorf("no storage configured")
	}
	return factory.New(ctx)
}

// requestIDMiddleware tags every request with an X-Request-ID so log
// lines and error reports can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
