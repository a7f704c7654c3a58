// Package config assembles runtime settings from built-in defaults, an
// optional YAML file and FPADMIN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fpadmin/internal/core"
	"fpadmin/internal/kv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FPADMIN_"

// Config is the full process configuration.
type Config struct {
	HTTP    HTTPConfig         `yaml:"http"`
	Log     LogConfig          `yaml:"log"`
	Storage core.StorageConfig `yaml:"storage"`
	KV      kv.Config          `yaml:"kv"`
	Metrics MetricsConfig      `yaml:"metrics"`
	// Seed loads the embedded fixtures when the records store starts empty.
	Seed bool `yaml:"seed"`
}

// HTTPConfig configures the admin API listener.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required_if=Enabled true"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:     LogConfig{Level: "info"},
		Storage: core.StorageConfig{Driver: core.StorageMemory, SQLitePath: "fpadmin.db", IDStrategy: core.IDStrategyUUID},
		KV:      kv.Config{Driver: kv.DriverFilesystem, FSRoot: "data/settings"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "fpadmin"},
		Seed:    true,
	}
}

// Load layers the YAML file at path (skipped when empty) and the environment
// over the defaults, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := core.ValidateStruct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	env := envReader{lookup: lookup}
	env.str("HTTP_ADDR", &cfg.HTTP.Addr)
	env.list("CORS_ORIGINS", &cfg.HTTP.CORSOrigins)
	env.duration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	env.duration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	env.duration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout)

	env.str("LOG_LEVEL", &cfg.Log.Level)
	env.boolean("LOG_DEVELOPMENT", &cfg.Log.Development)

	var storageDriver string
	if env.str("STORAGE_DRIVER", &storageDriver) {
		cfg.Storage.Driver = core.StorageDriver(strings.ToLower(storageDriver))
	}
	env.str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	env.str("POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	env.str("ID_STRATEGY", &cfg.Storage.IDStrategy)

	var kvDriver string
	if env.str("KV_DRIVER", &kvDriver) {
		cfg.KV.Driver = kv.Driver(strings.ToLower(kvDriver))
	}
	env.str("KV_FS_ROOT", &cfg.KV.FSRoot)
	env.str("KV_S3_BUCKET", &cfg.KV.S3.Bucket)
	env.str("KV_S3_REGION", &cfg.KV.S3.Region)
	env.str("KV_S3_PREFIX", &cfg.KV.S3.Prefix)
	env.str("KV_S3_ENDPOINT", &cfg.KV.S3.Endpoint)
	env.str("KV_S3_ACCESS_KEY_ID", &cfg.KV.S3.AccessKeyID)
	env.str("KV_S3_SECRET_ACCESS_KEY", &cfg.KV.S3.SecretAccessKey)
	env.boolean("KV_S3_PATH_STYLE", &cfg.KV.S3.PathStyle)

	env.boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)
	env.str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	env.boolean("SEED", &cfg.Seed)
	return errors.Join(env.errs...)
}

type envReader struct {
	lookup lookupFunc
	errs   []error
}

func (e *envReader) str(name string, dst *string) bool {
	v, ok := e.lookup(EnvPrefix + name)
	if !ok {
		return false
	}
	*dst = strings.TrimSpace(v)
	return true
}

func (e *envReader) list(name string, dst *[]string) {
	var raw string
	if !e.str(name, &raw) {
		return
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (e *envReader) boolean(name string, dst *bool) {
	var raw string
	if !e.str(name, &raw) {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
		return
	}
	*dst = v
}

func (e *envReader) duration(name string, dst *time.Duration) {
	var raw string
	if !e.str(name, &raw) {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
		return
	}
	*dst = v
}
