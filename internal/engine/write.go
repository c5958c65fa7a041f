package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteer-backend/internal/metadata"
	"volunteer-backend/internal/store"
)

// The mutation pipeline is terminal on first failure:
// validate body -> uniqueness -> foreign keys -> check rules -> apply ->
// re-read. Validation always precedes the store write, so a rejected
// request leaves no partial state behind. There is no atomicity across
// the load/apply window; concurrent writers race exactly as the store
// allows (a deliberate non-guarantee).

// nowISO returns the stored timestamp shape: millisecond-precision
// ISO-8601 UTC text, identical in both dialects.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// CreateRecord runs the full create pipeline and returns the stored row.
func CreateRecord(ctx context.Context, s *store.Store, reg *metadata.Registry, entity *metadata.Entity, body map[string]any) (map[string]any, *AppError) {
	fields, appErr := ValidateCreate(entity, body)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := checkUnique(ctx, s, entity, fields, 0); appErr != nil {
		return nil, appErr
	}
	if appErr := checkForeignKeys(ctx, s, reg, entity, fields); appErr != nil {
		return nil, appErr
	}
	if appErr := EvaluateRules(entity, fields, "create"); appErr != nil {
		return nil, appErr
	}

	for _, f := range entity.Fields {
		if f.Auto == "create" || f.Auto == "update" {
			fields[f.Name] = nowISO()
		}
	}

	sql, params := buildInsertSQL(entity, fields, s.Dialect)
	row, err := store.QueryRow(ctx, s.DB, sql, params...)
	if err != nil {
		if errors.Is(store.MapError(s.Dialect, err), store.ErrUniqueViolation) {
			return nil, duplicateError(entity, fields)
		}
		return nil, InternalError(err)
	}

	id, _ := parseIntValue(row["id"])
	return fetchRecord(ctx, s, entity, id)
}

// UpdateRecord runs the partial-update pipeline against an existing row.
// current is the pre-loaded row; only body keys present in the descriptor's
// updatable set enter the change-set.
func UpdateRecord(ctx context.Context, s *store.Store, entity *metadata.Entity, id int64, current map[string]any, body map[string]any) (map[string]any, *AppError) {
	fields, appErr := ValidateUpdate(entity, body)
	if appErr != nil {
		return nil, appErr
	}

	if len(fields) == 0 && !entity.TouchesUpdatedAt() {
		if entity.RejectEmptyUpdate {
			return nil, NewAppError("NO_UPDATES", 400, "No valid fields to update")
		}
		return current, nil
	}

	if appErr := checkUnique(ctx, s, entity, fields, id); appErr != nil {
		return nil, appErr
	}
	if appErr := EvaluateRules(entity, fields, "update"); appErr != nil {
		return nil, appErr
	}

	for _, f := range entity.Fields {
		if f.Auto == "update" {
			fields[f.Name] = nowISO()
		}
	}

	sql, params := buildUpdateSQL(entity, id, fields, s.Dialect)
	if _, err := store.Exec(ctx, s.DB, sql, params...); err != nil {
		if errors.Is(store.MapError(s.Dialect, err), store.ErrUniqueViolation) {
			return nil, duplicateError(entity, fields)
		}
		return nil, InternalError(err)
	}

	return fetchRecord(ctx, s, entity, id)
}

// DeleteRecord removes the row and returns it for the delete envelope.
// Children of the row are left in place: batch/album deletion does not
// cascade, so orphaned albums and media stay queryable.
func DeleteRecord(ctx context.Context, s *store.Store, entity *metadata.Entity, id int64, current map[string]any) (map[string]any, *AppError) {
	pb := s.Dialect.NewParamBuilder()
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = %s", entity.Table, pb.Add(id))
	affected, err := store.Exec(ctx, s.DB, sql, pb.Params()...)
	if err != nil {
		return nil, InternalError(err)
	}
	if affected == 0 {
		return nil, NotFoundError(entity)
	}
	return current, nil
}

// fetchRecord reads one row by identity and decodes it for the response.
func fetchRecord(ctx context.Context, s *store.Store, entity *metadata.Entity, id int64) (map[string]any, *AppError) {
	sql, params := BuildSelectByIDSQL(entity, id, s.Dialect)
	row, err := store.QueryRow(ctx, s.DB, sql, params...)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError(entity)
		}
		return nil, InternalError(err)
	}
	DecodeRows(entity, []map[string]any{row}, s.Dialect)
	return row, nil
}

// DecodeRows repairs driver representations in place: SQLite integer
// booleans become bools, and JSON id-list columns become arrays.
func DecodeRows(entity *metadata.Entity, rows []map[string]any, dialect store.Dialect) {
	if dialect.NeedsBoolFix() {
		store.NormalizeBooleans(rows, entity.BoolFieldNames())
	}
	listFields := entity.ListFieldNames()
	if len(listFields) == 0 {
		return
	}
	for _, row := range rows {
		for _, name := range listFields {
			switch v := row[name].(type) {
			case string:
				var list []any
				if err := json.Unmarshal([]byte(v), &list); err != nil || list == nil {
					list = []any{}
				}
				row[name] = list
			case nil:
				row[name] = []any{}
			}
		}
	}
}

// checkUnique enforces declared uniqueness constraints on the change-set.
// Values are compared trim-normalized (validation already trimmed them).
// A non-zero excludeID skips the row's own identity, so renaming a
// department to its current name succeeds.
func checkUnique(ctx context.Context, s *store.Store, entity *metadata.Entity, fields map[string]any, excludeID int64) *AppError {
	for _, f := range entity.Fields {
		if !f.Unique {
			continue
		}
		val, present := fields[f.Name]
		if !present {
			continue
		}

		pb := s.Dialect.NewParamBuilder()
		sql := fmt.Sprintf("SELECT id FROM %s WHERE %s = %s", entity.Table, f.Column, pb.Add(val))
		if excludeID != 0 {
			sql += fmt.Sprintf(" AND id != %s", pb.Add(excludeID))
		}
		sql += " LIMIT 1"

		_, err := store.QueryRow(ctx, s.DB, sql, pb.Params()...)
		if err == nil {
			return NewAppError(f.UniqueCode, 400, f.UniqueMessage)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return InternalError(err)
		}
	}
	return nil
}

// checkForeignKeys verifies declared references exist. Runs at create
// only; updates never re-check a reference.
func checkForeignKeys(ctx context.Context, s *store.Store, reg *metadata.Registry, entity *metadata.Entity, fields map[string]any) *AppError {
	for _, f := range entity.Fields {
		if f.Ref == nil {
			continue
		}
		val, present := fields[f.Name]
		if !present {
			continue
		}
		target := reg.GetEntity(f.Ref.Entity)
		if target == nil {
			return InternalError(fmt.Errorf("unknown reference target %s", f.Ref.Entity))
		}

		pb := s.Dialect.NewParamBuilder()
		sql := fmt.Sprintf("SELECT id FROM %s WHERE id = %s LIMIT 1", target.Table, pb.Add(val))
		_, err := store.QueryRow(ctx, s.DB, sql, pb.Params()...)
		if errors.Is(err, store.ErrNotFound) {
			return NewAppError(f.Ref.NotFoundCode, 404, f.Ref.NotFoundMessage)
		}
		if err != nil {
			return InternalError(err)
		}
	}
	return nil
}

func buildInsertSQL(entity *metadata.Entity, fields map[string]any, dialect store.Dialect) (string, []any) {
	pb := dialect.NewParamBuilder()
	var cols, placeholders []string
	for _, f := range entity.Fields {
		val, present := fields[f.Name]
		if !present {
			continue
		}
		cols = append(cols, f.Column)
		placeholders = append(placeholders, pb.Add(encodeValue(f, val)))
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		entity.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return sql, pb.Params()
}

func buildUpdateSQL(entity *metadata.Entity, id int64, fields map[string]any, dialect store.Dialect) (string, []any) {
	pb := dialect.NewParamBuilder()
	var sets []string
	for _, f := range entity.Fields {
		val, present := fields[f.Name]
		if !present {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", f.Column, pb.Add(encodeValue(f, val))))
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		entity.Table, strings.Join(sets, ", "), pb.Add(id))
	return sql, pb.Params()
}

// encodeValue converts a normalized field value to its column
// representation. Id lists are stored as JSON text.
func encodeValue(f metadata.Field, val any) any {
	if f.Kind == metadata.KindIDList {
		b, err := json.Marshal(val)
		if err != nil {
			return "[]"
		}
		return string(b)
	}
	return val
}

// duplicateError resolves a store-level unique violation to the stable
// per-field code, closing the check-then-act race window with the same
// contract as the explicit pre-check.
func duplicateError(entity *metadata.Entity, fields map[string]any) *AppError {
	for _, f := range entity.Fields {
		if !f.Unique {
			continue
		}
		if _, present := fields[f.Name]; present {
			return NewAppError(f.UniqueCode, 400, f.UniqueMessage)
		}
	}
	return NewAppError("DUPLICATE", 400, "A record with this value already exists")
}
