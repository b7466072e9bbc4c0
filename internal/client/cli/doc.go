// Package cli implements the interactive worldpub client: a small REPL
// with commands for logging in, inspecting the local project and running
// the upload pipeline.
package cli
