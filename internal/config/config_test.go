package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		KeyBackend, KeyDataDir, KeyLogLevel, KeyPostgresDSN,
		KeyS3Bucket, KeyS3Region, KeyS3Endpoint, KeyS3PathStyle, KeyS3Prefix,
		KeyS3AccessKeyID, KeyS3SecretAccessKey,
	} {
		t.Setenv(envName(key), "")
	}
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestLoad_FirstRunWritesDefault(t *testing.T) {
	clearEnv(t)
	configDir := filepath.Join(t.TempDir(), "cfg")
	dataDir := filepath.Join(t.TempDir(), "data")

	s, err := Load(configDir, dataDir)
	require.NoError(t, err)
	assert.Equal(t, types.BackendFile, s.Store.Backend)
	assert.Equal(t, dataDir, s.Store.DataDir)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, configDir, s.ConfigDir)

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")
	assert.Contains(t, string(data), "log_level: warn")
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	configDir := t.TempDir()
	writeConfig(t, configDir, `
backend: s3
data_dir: /srv/coursebook
log_level: debug
s3_bucket: courses
s3_region: eu-west-1
s3_endpoint: http://localhost:9000
s3_path_style: true
s3_prefix: prod/
`)

	s, err := Load(configDir, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, types.Config{
		Backend: types.BackendS3,
		DataDir: "/srv/coursebook",
		S3: types.S3Config{
			Bucket:    "courses",
			Region:    "eu-west-1",
			Endpoint:  "http://localhost:9000",
			Prefix:    "prod/",
			PathStyle: true,
		},
	}, s.Store)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	configDir := t.TempDir()
	writeConfig(t, configDir, "backend: file\ndata_dir: /from/file\n")

	t.Setenv("COURSEBOOK_BACKEND", "postgres")
	t.Setenv("COURSEBOOK_POSTGRES_DSN", "postgres://u:p@localhost/coursebook")
	t.Setenv("COURSEBOOK_DATA_DIR", "/from/env")

	s, err := Load(configDir, "")
	require.NoError(t, err)
	assert.Equal(t, types.BackendPostgres, s.Store.Backend)
	assert.Equal(t, "postgres://u:p@localhost/coursebook", s.Store.PostgresDSN)
	assert.Equal(t, "/from/env", s.Store.DataDir)

	s, err = Load(configDir, "/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", s.Store.DataDir)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	const key = "COURSEBOOK_S3_BUCKET"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	configDir := t.TempDir()
	writeConfig(t, configDir, "backend: s3\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, ".env"), []byte(key+"=from-dotenv\n"), 0o600))

	s, err := Load(configDir, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.Store.S3.Bucket)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown backend", "backend: redis\n", types.ErrBackendUnknown},
		{"postgres without dsn", "backend: postgres\n", types.ErrDSNRequired},
		{"s3 without bucket", "backend: s3\n", types.ErrBucketRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			configDir := t.TempDir()
			writeConfig(t, configDir, tt.content)

			_, err := Load(configDir, t.TempDir())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	configDir := t.TempDir()
	writeConfig(t, configDir, "backend: [file\n")

	_, err := Load(configDir, t.TempDir())
	assert.Error(t, err)
}

func TestWriteDefault_Idempotent(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, WriteDefault(configDir, "/data"))
	first, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "data_dir: /data")

	require.NoError(t, WriteDefault(configDir, "/other"))
	second, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
