package database

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	apperrors "github.com/mquintal/aitutor/pkg/errors"
)

// Config contains database connection options.
type Config struct {
	Driver   string
	Path     string // SQLite database path when Driver == sqlite
	DSN      string // Optional DSN override
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Options  map[string]string
}

// Open initialises a gorm.DB using the provided configuration.
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = "sqlite"
	}

	switch driver {
	case "sqlite":
		return openSQLite(cfg)
	case "postgres":
		return openPostgres(cfg)
	case "mysql":
		return openMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Manager owns the lifetime of the shared database handle. The handle is
// opened lazily on first Acquire and reused by every subsequent caller;
// Close is safe to call repeatedly and when nothing was ever opened.
type Manager struct {
	cfg Config

	mu sync.Mutex
	db *gorm.DB
}

// NewManager builds a Manager for the provided configuration. No connection
// is established until Acquire is called.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Acquire returns the shared handle, opening the underlying storage on first
// use. A failed open leaves the manager empty so a later call retries from
// scratch.
func (m *Manager) Acquire() (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	db, err := Open(m.cfg)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable.WithInternal(err)
	}

	m.db = db
	return m.db, nil
}

// Close releases the underlying handle if one is open. Calling Close on an
// already-closed manager is a no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	m.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
