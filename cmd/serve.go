// Package cmd defines the imgd command line. It resolves the server
// parameters from flags and hands them to the bootstrap.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"imgd/bootstrap"
	"imgd/core"
)

// NewServerCmd builds the root command. Flags map one-to-one onto
// core.ServerParameters; the command body is only glue.
func NewServerCmd() *cobra.Command {
	var params core.ServerParameters

	cmd := &cobra.Command{
		Use:           "imgd",
		Short:         "imgd is an image-processing HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if params.KeyFile != "" {
				key, err := os.ReadFile(params.KeyFile)
				if err != nil {
					return fmt.Errorf("reading security key file %q: %w", params.KeyFile, err)
				}
				params.SecurityKey = strings.TrimSpace(string(key))
			}

			app, err := bootstrap.NewApp(params)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.IP, "ip", "a", "0.0.0.0", "address to bind the server to")
	flags.IntVarP(&params.Port, "port", "p", 8888, "port to bind the server to")
	flags.StringVar(&params.FD, "fd", "", "inherited socket: a descriptor number or a path to a socket file")
	flags.StringVarP(&params.ConfigPath, "conf", "c", "", "path to the configuration file")
	flags.StringVarP(&params.LogLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.BoolVarP(&params.Debug, "debug", "d", false, "enable debug logging")
	flags.StringVar(&params.SecurityKey, "key", "", "security key, overrides the configuration")
	flags.StringVarP(&params.KeyFile, "keyfile", "k", "", "path to a file holding the security key")
	flags.StringVar(&params.AppClass, "app-class", core.DefaultAppClass, "registered application class to serve")
	flags.BoolVar(&params.UseEnvironment, "use-environment", false, "allow environment variables to override configuration settings")

	return cmd
}
