package types

import "errors"

// Supported storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDSNRequired    = errors.New("postgres backend requires a DSN")
	ErrBucketRequired = errors.New("s3 backend requires a bucket")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:     true,
	BackendSQLite:   true,
	BackendPostgres: true,
	BackendS3:       true,
	BackendMemory:   true,
}

// Config holds backend selection and per-backend parameters.
type Config struct {
	Backend     string   `json:"backend" yaml:"backend"`
	DataDir     string   `json:"data_dir" yaml:"data_dir"`
	PostgresDSN string   `json:"postgres_dsn,omitempty" yaml:"postgres_dsn,omitempty"`
	S3          S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config describes an S3-compatible bucket (AWS S3 or MinIO).
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	PathStyle bool   `json:"path_style,omitempty" yaml:"path_style,omitempty"`

	// Static credentials; when empty the AWS default credential chain applies.
	AccessKeyID     string `json:"-" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"-" yaml:"secret_access_key,omitempty"`
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.Backend {
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return ErrDSNRequired
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return ErrBucketRequired
		}
	}
	return nil
}
