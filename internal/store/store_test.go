package store

import (
	"context"
	"errors"
	"testing"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/metadata"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		Path:   t.TempDir(),
		Name:   "test",
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestBootstrap_CreatesTablesAndSeedsOfficer(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Bootstrap(ctx, metadata.DefaultCatalog()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	row, err := QueryRow(ctx, s.DB,
		`SELECT officer_id AS "officerId", password FROM officer_credentials WHERE officer_id = ?1`,
		WellKnownOfficerID)
	if err != nil {
		t.Fatalf("seeded officer missing: %v", err)
	}
	if row["password"] != "NSS@OFFICER2025" {
		t.Errorf("unexpected seeded password: %v", row["password"])
	}

	// Bootstrap is idempotent: a second run neither fails nor reseeds.
	if err := s.Bootstrap(ctx, metadata.DefaultCatalog()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	rows, err := QueryRows(ctx, s.DB, "SELECT id FROM officer_credentials")
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single seeded row, got %d", len(rows))
	}
}

func TestQueryRow_NotFound(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Bootstrap(ctx, nil); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	_, err := QueryRow(ctx, s.DB, "SELECT id FROM officer_credentials WHERE officer_id = ?1", "NOBODY")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUniqueViolationMapping(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Bootstrap(ctx, metadata.DefaultCatalog()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	ins := "INSERT INTO departments (name, is_active, created_at) VALUES (?1, ?2, ?3)"
	if _, err := Exec(ctx, s.DB, ins, "Physics", true, "2025-01-01T00:00:00.000Z"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := Exec(ctx, s.DB, ins, "Physics", true, "2025-01-01T00:00:00.000Z")
	if err == nil {
		t.Fatal("duplicate name should violate the unique constraint")
	}
	if !errors.Is(MapError(s.Dialect, err), ErrUniqueViolation) {
		t.Fatalf("expected ErrUniqueViolation mapping, got %v", err)
	}
}

func TestNormalizeBooleans(t *testing.T) {
	rows := []map[string]any{
		{"isActive": int64(1), "name": "A"},
		{"isActive": int64(0), "name": "B"},
	}
	NormalizeBooleans(rows, []string{"isActive"})
	if rows[0]["isActive"] != true || rows[1]["isActive"] != false {
		t.Fatalf("integer booleans should convert: %v", rows)
	}
	if rows[0]["name"] != "A" {
		t.Errorf("non-boolean fields must not change: %v", rows[0]["name"])
	}
}
