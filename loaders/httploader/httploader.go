// Package httploader provides the default loader. It fetches source
// images over HTTP, restricted to the configured allowed sources and
// throttled by an optional requests-per-second limit.
package httploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Loaders.Register("http", &Factory{})
}

// Factory creates http loaders. The rate limiter is shared across
// requests so the configured ceiling is process-wide; New runs
// concurrently from request handlers, so the limiter is built once.
type Factory struct {
	once    sync.Once
	limiter *rate.Limiter
}

// New returns a loader configured from the context.
func (f *Factory) New(ctx *core.Context) (core.Loader, error) {
	timeout := time.Duration(ctx.Config.HTTPLoaderTimeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	f.once.Do(func() {
		if ctx.Config.HTTPLoaderMaxRPS > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(ctx.Config.HTTPLoaderMaxRPS), ctx.Config.HTTPLoaderMaxRPS)
		}
	})
	return &loader{
		client:  &http.Client{Timeout: timeout},
		allowed: ctx.Config.AllowedSources,
		limiter: f.limiter,
	}, nil
}

type loader struct {
	client  *http.Client
	allowed []string
	limiter *rate.Limiter
}

func (l *loader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("httploader: parsing %q: %w", rawURL, err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if !l.sourceAllowed(u.Hostname()) {
		return nil, fmt.Errorf("httploader: source %q not in allowed sources", u.Hostname())
	}
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httploader: fetching %q: %w", u.String(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httploader: fetching %q: unexpected status %d", u.String(), resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// sourceAllowed matches the host against the allowed sources. A leading
// "*." entry matches any subdomain. An empty list allows everything.
func (l *loader) sourceAllowed(host string) bool {
	if len(l.allowed) == 0 {
		return true
	}
	for _, src := range l.allowed {
		if strings.HasPrefix(src, "*.") {
			if strings.HasSuffix(host, src[1:]) || host == src[2:] {
				return true
			}
			continue
		}
		if host == src {
			return true
		}
	}
	return false
}
