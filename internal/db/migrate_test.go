package db_test

import (
	"testing"

	"github.com/joestump/bookmarks-api/internal/db"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := db.New("oracle", "whatever"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestMigrate_CreatesBookmarksTable(t *testing.T) {
	conn, err := db.New("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Running twice is a no-op.
	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		t.Fatalf("count bookmarks: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	if _, err := conn.Exec(`INSERT INTO bookmarks (title, url, rating) VALUES ('x', 'https://x.com', 9)`); err == nil {
		t.Error("expected rating check constraint to reject 9")
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	conn, err := db.New("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "mssql"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}
