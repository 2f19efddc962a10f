package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"5000" env:"PORT"`
	// FrontendURL is the production frontend origin allowed by the CORS policy.
	FrontendURL string `mapstructure:"frontend_url" default:"" env:"FRONTEND_URL"`
	// WaitForDatabase delays binding the listener until the database is connected.
	WaitForDatabase bool `mapstructure:"wait_for_database" default:"false"`
	// BodyLimit is the maximum accepted request body size in bytes.
	BodyLimit int `mapstructure:"body_limit" default:"1048576"`
	// Swagger exposes the API documentation under /swagger.
	Swagger bool `mapstructure:"swagger" default:"true"`
	// Environment is the deployment environment name (development, production).
	Environment string `mapstructure:"environment" default:"development" env:"NODE_ENV"`
}

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// Validate checks the server settings.
func (c Config) Validate() error {
	var errs []string
	if p, err := strconv.Atoi(c.Port); err != nil || p < 0 || p > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT %q is not a valid port", c.Port))
	}
	if c.FrontendURL == "" {
		errs = append(errs, "FRONTEND_URL is required")
	} else if err := ValidateOrigin(c.FrontendURL); err != nil {
		errs = append(errs, fmt.Sprintf("FRONTEND_URL: %v", err))
	}
	if c.BodyLimit <= 0 {
		errs = append(errs, "SERVER_BODY_LIMIT must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateOrigin checks that s is a bare http(s) origin: scheme and host with
// an optional port, and no path, query or fragment.
func ValidateOrigin(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must use http or https", s)
	}
	if u.Host == "" {
		return fmt.Errorf("origin %q has no host", s)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("origin %q must not contain a path, query or credentials", s)
	}
	return nil
}
