// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"project-admin/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a fresh in-memory database with the models migrated. It is
// closed when the test finishes.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()
	cfg := database.Config{
		Driver:          database.DriverSQLite,
		Name:            "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		ConnectAttempts: 1,
	}
	db, err := database.Connect(t.Context(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if len(models) > 0 {
		if err := database.Migrate(db, models...); err != nil {
			t.Fatalf("Failed to migrate test database: %v", err)
		}
	}
	return db
}
