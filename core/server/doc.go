// Package server composes the HTTP application.
//
// New builds the Fiber app with the middleware and routes registered in a
// fixed order: tracing, CORS, body parsing, the health endpoints, the route
// groups under /api and finally the not-found fallback. Errors from every
// stage flow to the terminal error handler.
//
// # Configuration
//
// Config carries the listen port, the FRONTEND_URL origin added to the CORS
// allow-list, the request body limit and WaitForDatabase, which decides whether
// the listener is bound before or after the database connects.
//
// # Health
//
// GET /health and GET / always answer 200; they report that the process is
// alive, not that the database is reachable.
package server
