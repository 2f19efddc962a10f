// Package apperr defines the request-scoped error type returned by handlers and
// middleware. The terminal error handler turns an *Error into an HTTP response
// with its Status and Message; the wrapped cause stays server-side.
package apperr
