package token

import "time"

// Config holds configuration for authentication tokens and password hashing.
type Config struct {
	// JWTSecret is the HMAC key used to sign access tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:"" env:"JWT_SECRET"`
	// TokenTTL is how long an issued access token stays valid.
	TokenTTL time.Duration `mapstructure:"token_ttl" default:"24h"`
	// BcryptCost is the bcrypt work factor for stored passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" default:"10"`
}

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 16
