// Package buildinfo exposes version metadata injected at link time via
// -ldflags "-X github.com/dmitrijs2005/worldpub/internal/buildinfo.BuildVersion=...".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	BuildVersion = "N/A"
	BuildDate    = "N/A"
	BuildCommit  = "N/A"
)

// PrintBuildData writes build metadata to w, one line per value.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", BuildVersion)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", BuildCommit)
}
