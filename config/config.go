// Package config loads toolkit configuration from a YAML file with
// environment-variable overrides, and assembles the process logger and
// secret provider from it.
package config

import (
	"context"
	"os"
	"time"

	"httpkit/database"
	"httpkit/secret"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// EnvPrefix namespaces the override variables: HTTPKIT_LOG_LEVEL,
// HTTPKIT_DATABASE_DRIVER, and so on.
const EnvPrefix = "httpkit"

type Config struct {
	Log      Log             `json:"log"`
	Database database.Config `json:"database"`
	Secrets  Secrets         `json:"secrets"`
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is text or json.
	Format string `json:"format"`
	// Writer lists outputs: console, file.
	Writer []string `json:"writer"`

	File FileLog `json:"file"`
}

// FileLog configures the rotating file writer.
type FileLog struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

type Secrets struct {
	// Source selects the backend: env or ssm.
	Source string `json:"source"`
	// Prefix is prepended to keys by the env backend.
	Prefix string `json:"prefix"`
	// EnvFile preloads a KEY=VALUE file into the environment.
	EnvFile string `json:"env_file"`
	// Vault is the SSM parameter path prefix.
	Vault string `json:"vault"`

	CacheSize int `json:"cache_size"`
	// CacheTTL is a duration string like "5m".
	CacheTTL string `json:"cache_ttl"`
}

func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "json",
			Writer: []string{"console"},
		},
		Database: database.DefaultConfig(),
		Secrets: Secrets{
			Source:   "env",
			CacheTTL: "5m",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config file")
		}
		if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
			return cfg, errors.Wrap(err, "parsing config file")
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(err, "applying env overrides")
	}
	return cfg, nil
}

// NewProvider assembles the configured secret backend wrapped in the
// expiring cache.
func (s Secrets) NewProvider(ctx context.Context) (*secret.Cache, error) {
	if s.EnvFile != "" {
		if err := secret.LoadEnvFile(s.EnvFile); err != nil {
			return nil, errors.Wrap(err, "preloading env file")
		}
	}

	var backend secret.Provider
	switch s.Source {
	case "", "env":
		backend = secret.Env{Prefix: s.Prefix}
	case "ssm":
		params, err := secret.NewParams(ctx, s.Vault)
		if err != nil {
			return nil, err
		}
		backend = params
	default:
		return nil, errors.Errorf("unknown secret source %q", s.Source)
	}

	var ttl time.Duration
	if s.CacheTTL != "" {
		parsed, err := time.ParseDuration(s.CacheTTL)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing cache ttl %q", s.CacheTTL)
		}
		ttl = parsed
	}

	return secret.NewCache(backend, s.CacheSize, ttl), nil
}
