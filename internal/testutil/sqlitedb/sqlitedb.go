// Package sqlitedb opens a migrated in-memory database for tests.
package sqlitedb

import (
	"testing"

	"crediasesor-backoffice/internal/infrastructure/db"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh schema per call. The pool is pinned to one
// connection since every new ":memory:" connection is a separate database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}
