// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from the
// application's configuration.
//
// # Connect
//
// Connect opens the pool, verifies it with a ping and retries failed attempts
// with exponential backoff. Startup calls it once, in the background, and
// publishes the result through a Handle; handlers read the connection through
// the Provider interface and get ErrNotReady until it is available.
//
// # Schema
//
// Migrate applies the models of the feature packages. GetTableColumns reports
// the live columns of a table and backs the "migrate status" command.
//
// # Usage
//
//	db, err := database.Connect(ctx, cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "projects")
package database
