// Package config provides configuration management for the API.
//
// Settings come from environment variables, optionally seeded from a .env
// file, and are decoded with Viper into one immutable Config that is passed
// explicitly to every component.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: port, FRONTEND_URL, database gating, body limit
//   - Auth: JWT secret, token lifetime, bcrypt cost
//   - Database: driver and connection details, retry policy
//   - Storage: S3/MinIO settings for project attachments
//   - Log: logging level and format
//
// Nested keys map to upper-case variables (server.port -> SERVER_PORT). A few
// keys also accept a conventional short name through the env struct tag
// (FRONTEND_URL, JWT_SECRET, PORT, NODE_ENV).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
