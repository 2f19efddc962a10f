package database

import (
	"fmt"
	"time"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (mysql, postgres, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"project_admin"`
	// SSLMode is passed to postgres connections.
	SSLMode string `mapstructure:"ssl_mode" default:"disable"`
	// TimeoutSeconds bounds connection setup, reads and writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ConnectAttempts is how many times the initial connection is tried.
	ConnectAttempts int `mapstructure:"connect_attempts" default:"3"`
	// RetryBackoff is the base delay of the exponential backoff between attempts.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" default:"1s"`
	// AutoMigrate applies the schema after connecting.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

// Validate checks the database settings.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER %q is not supported", c.Driver)
	}
	if c.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}
	if c.ConnectAttempts < 1 {
		return fmt.Errorf("DATABASE_CONNECT_ATTEMPTS must be at least 1")
	}
	return nil
}
