package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultAppClass is the application implementation used when no
// app-class override is given on the command line.
const DefaultAppClass = "imgd.ImageServer"

// ServerParameters holds the runtime knobs resolved from the command line
// and the process environment. It is built once in cmd and treated as a
// value afterwards; Validate returns an updated copy instead of mutating.
type ServerParameters struct {
	// IP and Port describe where to bind when no descriptor is inherited.
	IP   string `validate:"required"`
	Port int    `validate:"gte=0,lte=65535"`

	// FD selects the binding strategy: empty means bind to (IP, Port), a
	// bare integer means attach that inherited socket descriptor, and any
	// other string is a filesystem path whose descriptor identifies a
	// pre-opened socket.
	FD string

	// ConfigPath is the configuration file location. A missing file is not
	// an error; the service then runs on defaults.
	ConfigPath string

	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
	Debug    bool

	// AppClass names the registered application implementation.
	AppClass string `validate:"required"`

	// SecurityKey is the shared credential. When empty it is resolved from
	// the configuration during validation.
	SecurityKey string

	// KeyFile optionally points at a file holding the security key; cmd
	// reads it into SecurityKey before bootstrap.
	KeyFile string

	// GifsiclePath is filled in by validation when the gifsicle engine is
	// enabled and the binary is found on PATH.
	GifsiclePath string

	// UseEnvironment enables per-setting environment overrides at
	// configuration load time.
	UseEnvironment bool
}

var paramsValidator = validator.New()

// Check verifies the parameter invariants (bindable port range, known log
// level, non-empty app class). It does not touch the network.
func (p ServerParameters) Check() error {
	if err := paramsValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid server parameters: %w", err)
	}
	return nil
}
