package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

func init() {
	// The modernc driver registers as "sqlite", which sqlx does not know
	// about; teach it the bindvar style so Rebind and named queries work.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// NewSQLite opens (or creates) a single-file store. The desktop app keeps
// its whole state in one such file, so a single connection is enough and
// avoids SQLITE_BUSY under the single-writer model.
func NewSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// NewMemory opens a throwaway in-memory database. Used in tests.
func NewMemory() (*sqlx.DB, error) {
	return NewSQLite(":memory:")
}
