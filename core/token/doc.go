// Package token issues and verifies the HS256 JWT access tokens handed out by
// the auth feature and checked by the auth middleware.
package token
