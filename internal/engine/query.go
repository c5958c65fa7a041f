package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"volunteer-backend/internal/metadata"
	"volunteer-backend/internal/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// QueryPlan is the immutable list of predicates a list request folds into
// a single bounded read. There is no mutable in-flight query object; the
// plan is built once, then rendered to SQL once.
type QueryPlan struct {
	Entity  *metadata.Entity
	Search  string
	Filters []WhereClause
	Limit   int
	Offset  int
}

type WhereClause struct {
	Field string // JSON field name, resolved to a column at render time
	Value any
}

// ParseListQuery translates list parameters into a QueryPlan.
// Unparsable limit/offset fall back to their defaults; out-of-range values
// are clamped to [1, maxLimit] and >= 0. Scope parameters that must be
// numeric fail fast before any query runs.
func ParseListQuery(c *fiber.Ctx, entity *metadata.Entity) (*QueryPlan, *AppError) {
	plan := &QueryPlan{
		Entity: entity,
		Search: c.Query("search"),
		Limit:  clampLimit(c.Query("limit")),
		Offset: clampOffset(c.Query("offset")),
	}

	queries := c.Queries()

	// Boolean filters apply whenever the parameter is present, even as
	// "false" or garbage: the filter value is (param == "true").
	for _, name := range entity.BoolFilters {
		raw, present := queries[name]
		if !present {
			continue
		}
		plan.Filters = append(plan.Filters, WhereClause{Field: name, Value: raw == "true"})
	}

	if sc := entity.Scope; sc != nil {
		if raw := c.Query(sc.Param); raw != "" {
			if sc.Numeric {
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, NewAppError(sc.InvalidCode, 400, sc.InvalidMsg)
				}
				plan.Filters = append(plan.Filters, WhereClause{Field: sc.Field, Value: n})
			} else {
				plan.Filters = append(plan.Filters, WhereClause{Field: sc.Field, Value: raw})
			}
		}
	}

	return plan, nil
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	if n < 1 {
		return 1
	}
	return n
}

func clampOffset(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BuildSelectSQL renders the plan as one parameterized SELECT.
// Search terms OR-combine across the declared search fields; search and
// filters AND-combine with each other.
func BuildSelectSQL(plan *QueryPlan, dialect store.Dialect) (string, []any) {
	entity := plan.Entity
	pb := dialect.NewParamBuilder()

	var where []string

	if plan.Search != "" && len(entity.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(plan.Search) + "%"
		var ors []string
		for _, name := range entity.SearchFields {
			f := entity.GetField(name)
			ors = append(ors, fmt.Sprintf("LOWER(%s) LIKE %s", f.Column, pb.Add(pattern)))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	for _, clause := range plan.Filters {
		f := entity.GetField(clause.Field)
		where = append(where, fmt.Sprintf("%s = %s", f.Column, pb.Add(clause.Value)))
	}

	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(entity.Columns(), ", "), entity.Table)
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	if entity.OrderNewestFirst {
		sql += " ORDER BY created_at DESC"
	}
	sql += fmt.Sprintf(" LIMIT %s OFFSET %s", pb.Add(plan.Limit), pb.Add(plan.Offset))

	return sql, pb.Params()
}

// BuildSelectByIDSQL renders the single-row fetch by primary identity.
func BuildSelectByIDSQL(entity *metadata.Entity, id int64, dialect store.Dialect) (string, []any) {
	pb := dialect.NewParamBuilder()
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s",
		strings.Join(entity.Columns(), ", "), entity.Table, pb.Add(id))
	return sql, pb.Params()
}
