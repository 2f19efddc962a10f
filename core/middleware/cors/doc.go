// Package cors implements the cross-origin policy of the API.
//
// The decision itself is the pure function Decide: a request without an Origin
// header is allowed, an origin is allowed only on an exact match with the
// allow-list, anything else is denied. Policy holds the allow-list (the
// development and hosted frontends plus FRONTEND_URL) and New turns it into
// Fiber middleware.
//
// Denied requests never reach later handlers: the middleware returns an error
// that wraps ErrOriginNotAllowed and the terminal error handler renders it as
// 403. Allowed requests are passed to Fiber's cors middleware, which sets
// Access-Control-Allow-Credentials and answers preflights with the fixed
// method and header lists.
package cors
