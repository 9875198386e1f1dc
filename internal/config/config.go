// Package config loads coursebook settings from config.yaml, an optional
// .env file and COURSEBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/coursebook/internal/paths"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// EnvPrefix prefixes every environment override (COURSEBOOK_BACKEND, ...).
const EnvPrefix = "COURSEBOOK"

// Config keys.
const (
	KeyBackend           = "backend"
	KeyDataDir           = "data_dir"
	KeyLogLevel          = "log_level"
	KeyPostgresDSN       = "postgres_dsn"
	KeyS3Bucket          = "s3_bucket"
	KeyS3Region          = "s3_region"
	KeyS3Endpoint        = "s3_endpoint"
	KeyS3PathStyle       = "s3_path_style"
	KeyS3Prefix          = "s3_prefix"
	KeyS3AccessKeyID     = "s3_access_key_id"
	KeyS3SecretAccessKey = "s3_secret_access_key"
)

// Defaults.
const (
	DefaultBackend  = types.BackendFile
	DefaultLogLevel = "warn"
)

// Settings is the resolved configuration of one CLI invocation.
type Settings struct {
	ConfigDir string
	LogLevel  string
	Store     types.Config
}

// fileConfig is the shape written to a fresh config.yaml.
type fileConfig struct {
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
	DataDir  string `yaml:"data_dir,omitempty"`
}

const configHeader = "# coursebook configuration\n" +
	"# backend: file | sqlite | postgres | s3 | memory\n" +
	"# Every key can be overridden with a COURSEBOOK_<KEY> environment variable.\n\n"

// Load resolves settings for configDir. It creates configDir and a default
// config.yaml when missing, loads configDir/.env into the environment
// without overriding variables already set, then reads config.yaml with
// environment overrides applied. dataDirFlag, when non-empty, wins over every
// other data directory source.
func Load(configDir, dataDirFlag string) (Settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return Settings{}, fmt.Errorf("create config directory: %w", err)
	}
	if err := WriteDefault(configDir, ""); err != nil {
		return Settings{}, err
	}
	if err := loadDotEnv(configDir); err != nil {
		return Settings{}, err
	}

	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyS3PathStyle, false)
	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend)))
	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(KeyDataDir))
	if err != nil {
		return Settings{}, fmt.Errorf("resolve data directory: %w", err)
	}

	s := Settings{
		ConfigDir: configDir,
		LogLevel:  v.GetString(KeyLogLevel),
		Store: types.Config{
			Backend:     backend,
			DataDir:     dataDir,
			PostgresDSN: v.GetString(KeyPostgresDSN),
			S3: types.S3Config{
				Bucket:          v.GetString(KeyS3Bucket),
				Region:          v.GetString(KeyS3Region),
				Endpoint:        v.GetString(KeyS3Endpoint),
				Prefix:          v.GetString(KeyS3Prefix),
				PathStyle:       v.GetBool(KeyS3PathStyle),
				AccessKeyID:     v.GetString(KeyS3AccessKeyID),
				SecretAccessKey: v.GetString(KeyS3SecretAccessKey),
			},
		},
	}
	if err := s.Store.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", paths.ConfigFile(configDir), err)
	}
	return s, nil
}

// WriteDefault writes a default config.yaml into configDir unless one
// already exists. A non-empty dataDir is recorded as data_dir.
func WriteDefault(configDir, dataDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&fileConfig{
		Backend:  DefaultBackend,
		LogLevel: DefaultLogLevel,
		DataDir:  dataDir,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// loadDotEnv loads configDir/.env when present.
func loadDotEnv(configDir string) error {
	path := paths.EnvFile(configDir)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
