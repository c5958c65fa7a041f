package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"volunteer-backend/internal/metadata"
)

// WellKnownOfficerID is the single credential row the login flow assumes.
const WellKnownOfficerID = "OFFICER001"

// Bootstrap creates the entity tables described by the catalog, plus the
// officer credential table, and seeds the well-known officer row if absent.
func (s *Store) Bootstrap(ctx context.Context, entities []*metadata.Entity) error {
	for _, e := range entities {
		ddl := s.entityTableSQL(e)
		if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", e.Table, err)
		}
	}

	officerDDL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS officer_credentials (
    %s,
    officer_id %s NOT NULL UNIQUE,
    password   %s NOT NULL,
    updated_at %s NOT NULL
)`,
		s.Dialect.AutoIncrementPK(),
		s.Dialect.ColumnType("text"),
		s.Dialect.ColumnType("text"),
		s.Dialect.ColumnType("text"))
	if _, err := s.DB.ExecContext(ctx, officerDDL); err != nil {
		return fmt.Errorf("create table officer_credentials: %w", err)
	}

	if err := s.seedOfficer(ctx); err != nil {
		return err
	}

	log.Printf("Bootstrapped %d entity tables", len(entities)+1)
	return nil
}

func (s *Store) entityTableSQL(e *metadata.Entity) string {
	var cols []string
	cols = append(cols, s.Dialect.AutoIncrementPK())
	for _, f := range e.Fields {
		col := fmt.Sprintf("%s %s", f.Column, s.Dialect.ColumnType(f.ColumnType()))
		if f.Unique {
			col += " UNIQUE"
		}
		cols = append(cols, col)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		e.Table, strings.Join(cols, ",\n    "))
}

func (s *Store) seedOfficer(ctx context.Context) error {
	pb := s.Dialect.NewParamBuilder()
	sel := fmt.Sprintf("SELECT id FROM officer_credentials WHERE officer_id = %s",
		pb.Add(WellKnownOfficerID))
	_, err := QueryRow(ctx, s.DB, sel, pb.Params()...)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check officer row: %w", err)
	}

	pb = s.Dialect.NewParamBuilder()
	ins := fmt.Sprintf(
		"INSERT INTO officer_credentials (officer_id, password, updated_at) VALUES (%s, %s, %s)",
		pb.Add(WellKnownOfficerID),
		pb.Add("NSS@OFFICER2025"),
		pb.Add(time.Now().UTC().Format("2006-01-02T15:04:05.000Z")))
	if _, err := Exec(ctx, s.DB, ins, pb.Params()...); err != nil {
		return fmt.Errorf("seed officer row: %w", err)
	}
	return nil
}
