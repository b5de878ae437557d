package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "github.com/mquintal/aitutor/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(Config{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=1"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func TestOpenSQLiteMemory(t *testing.T) {
	db := openTestDB(t)

	if err := db.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("expected health query to succeed: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestManagerReturnsSharedHandle(t *testing.T) {
	m := NewManager(Config{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"})
	t.Cleanup(func() {
		_ = m.Close()
	})

	first, err := m.Acquire()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	second, err := m.Acquire()
	if err != nil {
		t.Fatalf("acquire again: %v", err)
	}

	if first != second {
		t.Fatal("expected the same handle on repeated acquire")
	}
}

func TestManagerCloseIsIdempotent(t *testing.T) {
	m := NewManager(Config{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"})

	if _, err := m.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestManagerOpenFailureSurfacesStorageUnavailable(t *testing.T) {
	m := NewManager(Config{Driver: "oracle"})

	_, err := m.Acquire()
	if err == nil {
		t.Fatal("expected acquire to fail")
	}
	if !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}

	// No partial state: Close on a never-opened manager is a no-op.
	if err := m.Close(); err != nil {
		t.Fatalf("close after failed open: %v", err)
	}
}

func TestPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{User: "tutor", Name: "aitutor", Password: "pw"})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	want := "host=localhost port=5432 user=tutor dbname=aitutor password=pw sslmode=disable"
	if dsn != want {
		t.Fatalf("unexpected dsn: %q", dsn)
	}

	if _, err := buildPostgresDSN(Config{}); err == nil {
		t.Fatal("expected error when user/name missing")
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "tutor", Password: "pw", Name: "aitutor"})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	want := "tutor:pw@tcp(127.0.0.1:3306)/aitutor?charset=utf8mb4&loc=Local&parseTime=True"
	if dsn != want {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}
