package storage

// Config holds configuration for the attachment object store.
type Config struct {
	// Enabled turns on project attachments.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the host[:port] of the S3-compatible service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds every project attachment.
	Bucket string `mapstructure:"bucket" default:"project-attachments"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxUploadBytes caps a single attachment.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"10485760"`
}

// Validate checks the storage settings when storage is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" || c.Bucket == "" {
		return errMissingEndpoint
	}
	return nil
}
