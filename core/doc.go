// Package core defines the shared types of the imgd service: the server
// parameters resolved from the command line, the contracts every pluggable
// component implements, the resolved component set, and the execution
// context handed to the request-handling layer.
//
// Everything in this package is constructed once during bootstrap and is
// read-only afterwards. Request handlers share a single Context across
// goroutines and must not mutate it.
package core
