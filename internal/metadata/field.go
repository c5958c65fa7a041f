package metadata

// FieldKind selects the validator applied to a body value.
type FieldKind string

const (
	KindString         FieldKind = "string"   // required/optional non-empty trimmed string
	KindNullableString FieldKind = "nullable" // string or null, trimmed when non-empty
	KindBool           FieldKind = "boolean"  // strict boolean on update, default fallback on create
	KindEnum           FieldKind = "enum"     // exactly one of Field.Enum
	KindIntRef         FieldKind = "int_ref"  // base-10 integer foreign key
	KindIDList         FieldKind = "id_list"  // JSON array of identities, non-array becomes []
)

// ForeignKey declares a create-time existence check against another entity.
type ForeignKey struct {
	Entity          string // registry name of the referenced entity
	NotFoundCode    string
	NotFoundMessage string
}

type Field struct {
	Name   string // JSON name, e.g. "customId"
	Column string // database column, e.g. "custom_id"
	Kind   FieldKind

	Required        bool
	RequiredCode    string // e.g. MISSING_CUSTOM_ID
	RequiredMessage string
	InvalidCode     string // e.g. INVALID_NAME, used when a present value fails validation
	InvalidMessage  string

	Enum    []string // for KindEnum
	Default any      // used when an optional field is omitted on create

	Unique        bool
	UniqueCode    string // e.g. DUPLICATE_CUSTOM_ID
	UniqueMessage string

	Immutable bool // accepted on create only, never part of an update set
	Ref       *ForeignKey

	Auto string // "create" or "update": engine-managed timestamp
}

// IsAuto reports whether the field is written by the engine, not the client.
func (f Field) IsAuto() bool {
	return f.Auto == "create" || f.Auto == "update"
}

// ColumnType maps the field kind to a portable DDL type keyword, resolved
// per database by the store dialect.
func (f Field) ColumnType() string {
	switch f.Kind {
	case KindBool:
		return "boolean"
	case KindIntRef:
		return "int"
	default:
		return "text"
	}
}
