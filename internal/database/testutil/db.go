package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/database"
)

// MustOpenTestDB opens a private in-memory SQLite database for tests and
// applies migrations. The connection is closed via t.Cleanup.
func MustOpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps all connections in this test on
	// the same in-memory store while isolating it from other tests.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite permits one writer; a single pooled connection keeps concurrent
	// test goroutines from tripping over table locks.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
