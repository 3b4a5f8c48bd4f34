// Package bootstrap turns server parameters into a running service: it
// loads the configuration, configures logging, resolves the pluggable
// components, runs the pre-flight checks, assembles the execution context
// and application, and drives the server lifecycle until interruption.
//
// Every step is sequential and synchronous; any failure surfaces before
// the server binds, so the process never accepts traffic in an invalid
// state.
package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"imgd/app"
	"imgd/config"
	"imgd/core"
	"imgd/plugin"
)

// noticeMessage is written to stdout on interruption, before cleanup.
const noticeMessage = "-- imgd closed by user interruption --"

// App is the assembled service, ready to run.
type App struct {
	Params  core.ServerParameters
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Modules *core.Components
	Context *core.Context
	Handler http.Handler

	// out receives the interruption notice; defaults to os.Stdout.
	out io.Writer

	// signals overrides the interruption source in tests; when nil, Run
	// subscribes to SIGINT and SIGTERM.
	signals chan os.Signal
}

// NewApp builds the service in the fixed bootstrap order: configuration,
// logging, component resolution, validation, context, application. Any
// error is fatal to startup.
func NewApp(params core.ServerParameters) (*App, error) {
	if err := params.Check(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(params.ConfigPath, params.UseEnvironment)
	if err != nil {
		return nil, err
	}

	level := params.LogLevel
	if params.Debug {
		level = "debug"
	}
	logger, err := ConfigureLog(cfg.LogConfig, level)
	if err != nil {
		return nil, err
	}

	modules, err := plugin.Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving components: %w", err)
	}

	params, err = Validate(cfg, params)
	if err != nil {
		return nil, err
	}

	ctx, err := core.NewContext(params, cfg, modules, logger)
	if err != nil {
		return nil, err
	}

	handler, err := app.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("building application: %w", err)
	}

	logger.Infow("imgd bootstrapped",
		"engine", cfg.Engine,
		"loader", cfg.Loader,
		"storage", cfg.Storage,
		"result_storage", cfg.ResultStorage,
		"filters", len(modules.Filters),
		"detectors", len(modules.Detectors),
		"custom_error_handling", modules.ErrorHandler != nil)

	return &App{
		Params:  params,
		Config:  cfg,
		Logger:  logger,
		Modules: modules,
		Context: ctx,
		Handler: handler,
		out:     os.Stdout,
	}, nil
}

// Run acquires the listening socket, serves until interruption, then
// writes the notice, releases the engine's resources exactly once, and
// returns nil so the process exits successfully. A serve failure before
// interruption is returned as a fatal error.
func (a *App) Run() error {
	ln, err := Listen(a.Params)
	if err != nil {
		return err
	}

	server := &http.Server{Handler: a.Handler}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	// Single serve loop: worker multiplicity is fixed at one.
	a.Logger.Infow("imgd running", "addr", ln.Addr().String(), "workers", 1)

	sig := a.signals
	if sig == nil {
		sig = make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-sig:
	}

	fmt.Fprintln(a.out, noticeMessage)
	if err := a.Modules.Engine.Cleanup(); err != nil {
		a.Logger.Warnw("engine cleanup failed", "error", err)
	}
	_ = server.Close()
	_ = a.Logger.Sync()
	return nil
}
