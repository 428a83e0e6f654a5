package store

import (
	"context"
	"path/filepath"
	"testing"
)

func testUnmigratedStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestMigrateFreshDB(t *testing.T) {
	st := testUnmigratedStore(t)
	ctx := context.Background()

	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	version, err := currentVersion(st.db)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}

	var count int
	if err := st.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='todos'").Scan(&count); err != nil {
		t.Fatalf("check todos: %v", err)
	}
	if count != 1 {
		t.Fatal("todos table not created")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	st := testUnmigratedStore(t)
	ctx := context.Background()

	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	version, err := currentVersion(st.db)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
}

func TestMigrationPlan(t *testing.T) {
	st := testUnmigratedStore(t)

	plan, err := MigrationPlan(st.db)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.CurrentVersion != 0 {
		t.Fatalf("expected current 0, got %d", plan.CurrentVersion)
	}
	if plan.AvailableVersion != 2 {
		t.Fatalf("expected available 2, got %d", plan.AvailableVersion)
	}
	if len(plan.Pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(plan.Pending))
	}

	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	plan, err = MigrationPlan(st.db)
	if err != nil {
		t.Fatalf("plan after migrate: %v", err)
	}
	if plan.CurrentVersion != 2 {
		t.Fatalf("expected current 2, got %d", plan.CurrentVersion)
	}
	if len(plan.Pending) != 0 {
		t.Fatalf("expected no pending, got %d", len(plan.Pending))
	}
}
