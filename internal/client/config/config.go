// Package config holds runtime settings for the worldpub CLI.
//
// Configuration is layered: LoadDefaults first, then a JSON file (if one is
// named via -c/-config), then command-line flags. Later sources take
// precedence over earlier ones.
package config

import "time"

type Config struct {
	// APIEndpoint is the base URL of the blueprint service.
	APIEndpoint string

	// FileEndpoint is the S3-compatible endpoint artifacts are uploaded to;
	// FileBaseURL is the public base under which uploaded files are served.
	FileEndpoint string
	FileBaseURL  string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// PartSize is the multipart chunk size in bytes. Values below the S3
	// minimum are raised to it.
	PartSize int64

	// PollInterval bounds how often blocking waits re-check the
	// cancellation token.
	PollInterval time.Duration

	RequestTimeout time.Duration

	// StagingDir receives versioned copies of build artifacts before
	// upload. Empty means a "staging" directory under the working dir.
	StagingDir string

	// LocalDBPath is the sqlite file carrying per-project publisher state.
	LocalDBPath string

	// Tags composing the deterministic staging file name.
	Platform           string
	ServerEnv          string
	HostVersion        string
	AssetFormatVersion string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpoint = "http://127.0.0.1:8080"
	c.FileEndpoint = "http://127.0.0.1:9000"
	c.FileBaseURL = "http://127.0.0.1:9000/worldpub-files"
	c.S3Region = "us-east-1"
	c.S3Bucket = "worldpub-files"
	c.PartSize = 16 * 1024 * 1024
	c.PollInterval = 50 * time.Millisecond
	c.RequestTimeout = 30 * time.Second
	c.StagingDir = ""
	c.LocalDBPath = "worldpub.db"
	c.Platform = "standalonewindows"
	c.ServerEnv = "release"
	c.HostVersion = "2022.3.22f1"
	c.AssetFormatVersion = "1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
