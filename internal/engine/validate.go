package engine

import (
	"strconv"
	"strings"

	"volunteer-backend/internal/metadata"
)

// Field validators are pure: they normalize body values against descriptor
// rules and never touch the store. Create and update differ in how they
// treat absence (defaults vs. skip) and non-boolean booleans (default
// fallback vs. rejection).

// ValidateCreate checks every writable field of the entity against the
// request body and returns the normalized change-set keyed by JSON name.
func ValidateCreate(entity *metadata.Entity, body map[string]any) (map[string]any, *AppError) {
	fields := make(map[string]any)
	for _, f := range entity.WritableFields() {
		raw, present := body[f.Name]
		if !present || raw == nil {
			if f.Required {
				return nil, NewAppError(f.RequiredCode, 400, f.RequiredMessage)
			}
			fields[f.Name] = createDefault(f)
			continue
		}
		// An empty string for a required string field reads as absent,
		// not malformed. Whitespace-only values stay malformed.
		if raw == "" && f.Required && f.Kind == metadata.KindString {
			return nil, NewAppError(f.RequiredCode, 400, f.RequiredMessage)
		}

		val, appErr := normalizeValue(f, raw, true)
		if appErr != nil {
			return nil, appErr
		}
		fields[f.Name] = val
	}
	return fields, nil
}

// ValidateUpdate checks only the keys present in the body. Immutable and
// engine-managed fields are ignored, as are keys no descriptor declares.
func ValidateUpdate(entity *metadata.Entity, body map[string]any) (map[string]any, *AppError) {
	fields := make(map[string]any)
	for _, f := range entity.UpdatableFields() {
		raw, present := body[f.Name]
		if !present {
			continue
		}
		if raw == nil {
			if f.Kind == metadata.KindNullableString {
				fields[f.Name] = nil
				continue
			}
			return nil, invalidFieldError(f)
		}

		val, appErr := normalizeValue(f, raw, false)
		if appErr != nil {
			return nil, appErr
		}
		fields[f.Name] = val
	}
	return fields, nil
}

func normalizeValue(f metadata.Field, raw any, isCreate bool) (any, *AppError) {
	switch f.Kind {
	case metadata.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, invalidFieldError(f)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, invalidFieldError(f)
		}
		return s, nil

	case metadata.KindNullableString:
		s, ok := raw.(string)
		if !ok {
			return nil, invalidFieldError(f)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		return s, nil

	case metadata.KindBool:
		b, ok := raw.(bool)
		if !ok {
			if isCreate {
				// Non-boolean values fall back to the declared default.
				return f.Default, nil
			}
			return nil, invalidFieldError(f)
		}
		return b, nil

	case metadata.KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, invalidFieldError(f)
		}
		s = strings.TrimSpace(s)
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, invalidFieldError(f)

	case metadata.KindIntRef:
		n, ok := parseIntValue(raw)
		if !ok {
			return nil, invalidFieldError(f)
		}
		return n, nil

	case metadata.KindIDList:
		list, ok := raw.([]any)
		if !ok {
			return []any{}, nil
		}
		return list, nil
	}

	return raw, nil
}

func createDefault(f metadata.Field) any {
	switch f.Kind {
	case metadata.KindIDList:
		return []any{}
	case metadata.KindBool:
		return f.Default
	default:
		return f.Default
	}
}

func invalidFieldError(f metadata.Field) *AppError {
	code := f.InvalidCode
	msg := f.InvalidMessage
	if code == "" {
		code = f.RequiredCode
		msg = f.RequiredMessage
	}
	return NewAppError(code, 400, msg)
}

// parseIntValue accepts JSON numbers and base-10 numeric strings.
func parseIntValue(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		n := int64(v)
		if float64(n) != v {
			return 0, false
		}
		return n, true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
