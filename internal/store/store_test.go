package store

import (
	"context"
	"path/filepath"
	"testing"
)

// testStore creates a migrated temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	return st
}

func TestOpenDoesNotCreateSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	exists, err := st.TableExists(ctx, "todos")
	if err != nil {
		t.Fatalf("table exists: %v", err)
	}
	if exists {
		t.Fatal("expected no todos table before migrate")
	}
}

func TestTableExistsAfterMigrate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"todos", "subtasks", "schema_migrations"} {
		exists, err := st.TableExists(ctx, name)
		if err != nil {
			t.Fatalf("table exists %s: %v", name, err)
		}
		if !exists {
			t.Fatalf("expected table %s after migrate", name)
		}
	}

	exists, err := st.TableExists(ctx, "nope")
	if err != nil {
		t.Fatalf("table exists: %v", err)
	}
	if exists {
		t.Fatal("expected no table named nope")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
