package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/worldpub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the blueprint API
//	-f string   S3-compatible file endpoint
//	-d string   staging directory for artifact copies
//	-b string   local sqlite database path
//	-p string   target platform tag
//	-e string   server environment tag
//
// The function filters os.Args down to the flags it knows about, using
// flagx.FilterArgs, to avoid interference with sub-command flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-d", "-b", "-p", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIEndpoint, "a", cfg.APIEndpoint, "base URL of the blueprint API")
	fs.StringVar(&cfg.FileEndpoint, "f", cfg.FileEndpoint, "S3-compatible file endpoint")
	fs.StringVar(&cfg.StagingDir, "d", cfg.StagingDir, "staging directory for artifact copies")
	fs.StringVar(&cfg.LocalDBPath, "b", cfg.LocalDBPath, "local sqlite database path")
	fs.StringVar(&cfg.Platform, "p", cfg.Platform, "target platform tag")
	fs.StringVar(&cfg.ServerEnv, "e", cfg.ServerEnv, "server environment tag")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
