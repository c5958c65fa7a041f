package metadata

// ScopeFilter restricts a list query to children of a parent identity,
// e.g. story albums by batchId. Numeric scopes reject unparsable ids
// before any query runs.
type ScopeFilter struct {
	Param       string // query parameter name, e.g. "batchId"
	Field       string // target field name on this entity
	Numeric     bool
	InvalidCode string // e.g. INVALID_BATCH_ID
	InvalidMsg  string
}

// Entity is the declarative rule set for one resource type. The engine
// serves every endpoint from these declarations; there is no per-entity
// handler code.
type Entity struct {
	Name     string // URL resource name, e.g. "story-albums"
	Table    string
	Singular string // human-readable, e.g. "Story album"
	Fields   []Field

	// Read side.
	SearchFields     []string // OR-combined case-insensitive substring match
	BoolFilters      []string // query params enabling exact boolean match
	Scope            *ScopeFilter
	OrderNewestFirst bool // ORDER BY created_at DESC

	// Error surface. NotFoundCode defaults to NOT_FOUND when empty.
	NotFoundCode    string
	NotFoundMessage string

	// Mutation policy.
	RejectEmptyUpdate bool   // empty change-set: 400 NO_UPDATES instead of returning the row
	DeleteEnvelopeKey string // key carrying the deleted row in the delete response

	Rules []Rule // expr check rules, run after field validation
}

// GetField returns a pointer to the field with the given JSON name, or nil.
func (e *Entity) GetField(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// HasField returns true if the entity has a field with the given JSON name.
func (e *Entity) HasField(name string) bool {
	return e.GetField(name) != nil
}

// Columns returns the select list including the primary key, each column
// aliased to its JSON name.
func (e *Entity) Columns() []string {
	cols := make([]string, 0, len(e.Fields)+1)
	cols = append(cols, "id")
	for _, f := range e.Fields {
		cols = append(cols, f.Column+` AS "`+f.Name+`"`)
	}
	return cols
}

// WritableFields returns fields the client may set on create.
func (e *Entity) WritableFields() []Field {
	var fields []Field
	for _, f := range e.Fields {
		if f.IsAuto() {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// UpdatableFields returns fields the client may set on update.
// Immutable fields (customId) are silently ignored, never rejected.
func (e *Entity) UpdatableFields() []Field {
	var fields []Field
	for _, f := range e.Fields {
		if f.IsAuto() || f.Immutable {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// BoolFieldNames returns the JSON names of boolean fields, used to repair
// SQLite integer booleans on read.
func (e *Entity) BoolFieldNames() []string {
	var names []string
	for _, f := range e.Fields {
		if f.Kind == KindBool {
			names = append(names, f.Name)
		}
	}
	return names
}

// ListFieldNames returns the JSON names of id-list fields, decoded from
// their JSON text columns on read.
func (e *Entity) ListFieldNames() []string {
	var names []string
	for _, f := range e.Fields {
		if f.Kind == KindIDList {
			names = append(names, f.Name)
		}
	}
	return names
}

// TouchesUpdatedAt reports whether the entity declares an auto "update"
// timestamp refreshed on every mutation.
func (e *Entity) TouchesUpdatedAt() bool {
	for _, f := range e.Fields {
		if f.Auto == "update" {
			return true
		}
	}
	return false
}
