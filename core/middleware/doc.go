// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: assigns every request a unique ray ID, exposed in locals and the
//     X-Ray-ID response header for tracing.
//   - RequestLog: one structured log entry per request.
//   - CORS: origin allow-list enforcement; denied requests are rejected before
//     any route runs.
//   - BodyParser: rejects malformed JSON bodies.
//   - Auth: bearer token validation and role checks for the route groups.
//   - ErrorHandler: the not-found fallback and the terminal error handler that
//     renders every error as a failure envelope.
//
// The composer in core/server registers RayID through BodyParser globally, in
// that order. Auth is attached per route by the features.
package middleware
