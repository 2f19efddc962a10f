package cors

import (
	"errors"
	"slices"
	"strings"
)

// ErrOriginNotAllowed is returned when a request origin is not on the allow-list.
var ErrOriginNotAllowed = errors.New("origin not allowed by CORS policy")

// DefaultOrigins are always allowed in addition to the configured frontend.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://admin-project-system-frontend.vercel.app",
}

var (
	// AllowedMethods are advertised on preflight responses.
	AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
	// AllowedHeaders are advertised on preflight responses.
	AllowedHeaders = []string{"Content-Type", "Authorization"}
)

// Decision is the outcome of an origin check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Decide allows requests without an origin and origins that exactly match an
// entry of allowlist.
func Decide(origin string, allowlist []string) Decision {
	if origin == "" || slices.Contains(allowlist, origin) {
		return Allow
	}
	return Deny
}

// Policy is the immutable allow-list built at startup.
type Policy struct {
	origins []string
}

// NewPolicy returns the default origins plus frontendURL.
func NewPolicy(frontendURL string) *Policy {
	origins := slices.Clone(DefaultOrigins)
	if o := NormalizeOrigin(frontendURL); o != "" && !slices.Contains(origins, o) {
		origins = append(origins, o)
	}
	return &Policy{origins: origins}
}

// Origins returns a copy of the allow-list.
func (p *Policy) Origins() []string {
	return slices.Clone(p.origins)
}

// Check returns ErrOriginNotAllowed when origin is denied.
func (p *Policy) Check(origin string) error {
	if Decide(origin, p.origins) == Deny {
		return ErrOriginNotAllowed
	}
	return nil
}

// NormalizeOrigin trims whitespace and a trailing slash so a configured URL
// compares equal to what browsers send in the Origin header.
func NormalizeOrigin(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "/")
}
