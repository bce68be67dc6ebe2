package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/evaluador/internal/db"
)

// NewTestDB returns a migrated in-memory evaluation store closed at test end.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
