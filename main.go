// Package main is the entry point for the imgd image service.
package main

import (
	"fmt"
	"os"

	"imgd/cmd"
	_ "imgd/plugin/builtin"
)

func main() {
	if err := cmd.NewServerCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
