// Package bootstrap sequences process startup: it validates the configuration,
// composes the HTTP application, binds the listener and connects to the
// database.
//
// Serving and database readiness are separate stages. By default the listener
// is bound before the database connects so that /health answers immediately;
// routes that need the database return 503 until it is ready. Setting
// SERVER_WAIT_FOR_DATABASE binds the listener only after the database stage
// succeeds. A database failure is logged and terminates the process with exit
// status 1.
package bootstrap
