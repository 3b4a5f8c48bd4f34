// Package config holds the immutable service configuration. Settings are
// loaded once at startup from an optional file; every setting has a
// default, and a missing or unreadable file is not an error. When
// environment overrides are enabled at load time, each override-eligible
// setting is shadowed by a like-named environment variable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the imgd service.
type Config struct {
	// SecurityKey is the shared credential used to sign request URLs. The
	// validator fails startup when neither this nor the server parameter is
	// set.
	SecurityKey string `mapstructure:"security_key"`

	// AllowedSources restricts which hosts the http loader will fetch from.
	// Empty means any source.
	AllowedSources []string `mapstructure:"allowed_sources"`

	// Pluggable component names, resolved by the importer at startup.
	Engine        string   `mapstructure:"engine"`
	Loader        string   `mapstructure:"loader"`
	Storage       string   `mapstructure:"storage"`
	ResultStorage string   `mapstructure:"result_storage"`
	Detectors     []string `mapstructure:"detectors"`
	Filters       []string `mapstructure:"filters"`
	Metrics       string   `mapstructure:"metrics"`

	// UseCustomErrorHandling gates resolution of ErrorHandlerModule; when
	// unset the error-handler role is simply absent.
	UseCustomErrorHandling bool   `mapstructure:"use_custom_error_handling"`
	ErrorHandlerModule     string `mapstructure:"error_handler_module"`

	// UseGifsicleEngine requires the gifsicle binary on PATH; validated
	// before the server binds.
	UseGifsicleEngine bool `mapstructure:"use_gifsicle_engine"`

	// LogConfig, when non-empty, is applied verbatim to the logging
	// subsystem instead of the fixed basic setup.
	LogConfig map[string]any `mapstructure:"log_config"`

	// Loader settings.
	FileLoaderRoot    string `mapstructure:"file_loader_root"`
	HTTPLoaderMaxRPS  int    `mapstructure:"http_loader_max_rps"`
	HTTPLoaderTimeout int    `mapstructure:"http_loader_timeout"` // seconds

	// Storage settings.
	FileStorageRoot      string `mapstructure:"file_storage_root"`
	LRUStorageSize       int    `mapstructure:"lru_storage_size"`
	RedisStorageAddr     string `mapstructure:"redis_storage_addr"`
	RedisStoragePassword string `mapstructure:"redis_storage_password"`
	RedisStorageDB       int    `mapstructure:"redis_storage_db"`
	S3StorageBucket      string `mapstructure:"s3_storage_bucket"`
	S3StorageRegion      string `mapstructure:"s3_storage_region"`
	S3StorageEndpoint    string `mapstructure:"s3_storage_endpoint"`
}

// envOverridable lists the settings an environment variable may shadow.
// The variable name is the setting name uppercased (engine → ENGINE).
// log_config is deliberately absent: structured mappings cannot be
// expressed in a single variable.
var envOverridable = []string{
	"security_key",
	"allowed_sources",
	"engine",
	"loader",
	"storage",
	"result_storage",
	"detectors",
	"filters",
	"metrics",
	"use_custom_error_handling",
	"error_handler_module",
	"use_gifsicle_engine",
	"file_loader_root",
	"http_loader_max_rps",
	"http_loader_timeout",
	"file_storage_root",
	"lru_storage_size",
	"redis_storage_addr",
	"redis_storage_password",
	"redis_storage_db",
	"s3_storage_bucket",
	"s3_storage_region",
	"s3_storage_endpoint",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("security_key", "")
	v.SetDefault("allowed_sources", []string{})
	v.SetDefault("engine", "raster")
	v.SetDefault("loader", "http")
	v.SetDefault("storage", "file")
	v.SetDefault("result_storage", "noop")
	v.SetDefault("detectors", []string{})
	v.SetDefault("filters", []string{"quality", "grayscale", "format"})
	v.SetDefault("metrics", "noop")
	v.SetDefault("use_custom_error_handling", false)
	v.SetDefault("error_handler_module", "")
	v.SetDefault("use_gifsicle_engine", false)
	v.SetDefault("log_config", map[string]any{})
	v.SetDefault("file_loader_root", "")
	v.SetDefault("http_loader_max_rps", 0)
	v.SetDefault("http_loader_timeout", 20)
	v.SetDefault("file_storage_root", "/tmp/imgd/storage")
	v.SetDefault("lru_storage_size", 1024)
	v.SetDefault("redis_storage_addr", "localhost:6379")
	v.SetDefault("redis_storage_password", "")
	v.SetDefault("redis_storage_db", 0)
	v.SetDefault("s3_storage_bucket", "")
	v.SetDefault("s3_storage_region", "us-east-1")
	v.SetDefault("s3_storage_endpoint", "")
}

// Load reads the configuration from path. An absent or unreadable file
// yields a defaults-only configuration, not an error. When useEnvironment
// is true, override-eligible settings are shadowed by like-named
// environment variables; shadowed values arrive as plain strings and are
// coerced on decode.
func Load(path string, useEnvironment bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if useEnvironment {
		for _, key := range envOverridable {
			_ = v.BindEnv(key, strings.ToUpper(key))
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			// Absent or unreadable file: run on defaults and env
			// overrides. A file that exists but does not parse is an
			// operator mistake and fails startup.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) &&
				!errors.Is(err, fs.ErrNotExist) &&
				!errors.Is(err, fs.ErrPermission) {
				return nil, fmt.Errorf("parsing configuration file %q: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return &cfg, nil
}
