// Package testing provides a shared in-memory database for package
// tests.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/galeria-app/galeriabackend/database"
)

// NewDB opens a fresh in-memory SQLite database with foreign keys on
// and all models migrated. The pool is pinned to one connection so
// every statement sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrateModels(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
