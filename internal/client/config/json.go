package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/flagx"
	"github.com/dmitrijs2005/worldpub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so JSON can specify them either as strings like "50ms" or
// as integer nanoseconds. Only non-zero fields overlay the runtime Config.
type JsonConfig struct {
	APIEndpoint        string         `json:"api_endpoint"`
	FileEndpoint       string         `json:"file_endpoint"`
	FileBaseURL        string         `json:"file_base_url"`
	S3Region           string         `json:"s3_region"`
	S3Bucket           string         `json:"s3_bucket"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
	PartSize           int64          `json:"part_size"`
	PollInterval       timex.Duration `json:"poll_interval"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	StagingDir         string         `json:"staging_dir"`
	LocalDBPath        string         `json:"local_db_path"`
	Platform           string         `json:"platform"`
	ServerEnv          string         `json:"server_env"`
	HostVersion        string         `json:"host_version"`
	AssetFormatVersion string         `json:"asset_format_version"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c/-config flags. When no file is named, nothing happens. Read or
// unmarshal errors panic (caller may recover); intended order is
// defaults -> parseJson -> parseFlags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.APIEndpoint, jc.APIEndpoint)
	overlayString(&cfg.FileEndpoint, jc.FileEndpoint)
	overlayString(&cfg.FileBaseURL, jc.FileBaseURL)
	overlayString(&cfg.S3Region, jc.S3Region)
	overlayString(&cfg.S3Bucket, jc.S3Bucket)
	overlayString(&cfg.S3AccessKey, jc.S3AccessKey)
	overlayString(&cfg.S3SecretKey, jc.S3SecretKey)
	overlayString(&cfg.StagingDir, jc.StagingDir)
	overlayString(&cfg.LocalDBPath, jc.LocalDBPath)
	overlayString(&cfg.Platform, jc.Platform)
	overlayString(&cfg.ServerEnv, jc.ServerEnv)
	overlayString(&cfg.HostVersion, jc.HostVersion)
	overlayString(&cfg.AssetFormatVersion, jc.AssetFormatVersion)

	if jc.PartSize > 0 {
		cfg.PartSize = jc.PartSize
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
