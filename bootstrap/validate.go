package bootstrap

import (
	"errors"
	"os/exec"

	"imgd/config"
	"imgd/core"
)

// Pre-flight configuration errors. The messages are part of the operator
// contract; tests pin them.
var (
	// ErrNoSecurityKey means neither the server parameters nor the
	// configuration supplied a credential.
	ErrNoSecurityKey = errors.New("no security key was found for this instance of imgd: provide one using the configuration file or a security key file")

	// ErrGifsicleNotFound means the animated-image engine is enabled but
	// its binary is not on PATH.
	ErrGifsicleNotFound = errors.New("use_gifsicle_engine is enabled but the gifsicle binary was not found: it must be present and executable in PATH")
)

// lookPath is swapped out by tests; production always resolves through
// the process PATH.
var lookPath = exec.LookPath

// Validate applies the pre-flight checks against the merged configuration
// and server parameters, before any socket is opened. It returns an
// updated copy of the parameters: the effective security key (parameter
// wins over configuration) and, when the gifsicle engine is enabled, the
// resolved binary path. The binary lookup is skipped entirely when the
// engine is disabled.
func Validate(cfg *config.Config, params core.ServerParameters) (core.ServerParameters, error) {
	if params.SecurityKey == "" {
		if cfg.SecurityKey == "" {
			return params, ErrNoSecurityKey
		}
		params.SecurityKey = cfg.SecurityKey
	}

	if cfg.UseGifsicleEngine {
		path, err := lookPath("gifsicle")
		if err != nil || path == "" {
			return params, ErrGifsicleNotFound
		}
		params.GifsiclePath = path
	}

	return params, nil
}
