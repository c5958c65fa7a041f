package engine

import (
	"testing"

	"volunteer-backend/internal/metadata"
)

func catalogEntity(t *testing.T, name string) *metadata.Entity {
	t.Helper()
	for _, e := range metadata.DefaultCatalog() {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entity %s not in catalog", name)
	return nil
}

func TestValidateCreate_Students(t *testing.T) {
	students := catalogEntity(t, "students")

	cases := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{"missing customId", map[string]any{"name": "A", "department": "CS", "password": "p"}, "MISSING_CUSTOM_ID"},
		{"missing name", map[string]any{"customId": "S1", "department": "CS", "password": "p"}, "MISSING_NAME"},
		{"empty name", map[string]any{"customId": "S1", "name": "", "department": "CS", "password": "p"}, "MISSING_NAME"},
		{"whitespace name", map[string]any{"customId": "S1", "name": "   ", "department": "CS", "password": "p"}, "INVALID_NAME"},
		{"non-string department", map[string]any{"customId": "S1", "name": "A", "department": float64(3), "password": "p"}, "INVALID_DEPARTMENT"},
		{"non-string profile url", map[string]any{"customId": "S1", "name": "A", "department": "CS", "password": "p", "profileImageUrl": float64(1)}, "INVALID_PROFILE_IMAGE_URL"},
		{"valid", map[string]any{"customId": "S1", "name": "A", "department": "CS", "password": "p"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields, appErr := ValidateCreate(students, tc.body)
			if tc.wantCode == "" {
				if appErr != nil {
					t.Fatalf("unexpected error: %v (%s)", appErr.Message, appErr.Code)
				}
				if fields["customId"] != "S1" {
					t.Errorf("customId not carried: %v", fields["customId"])
				}
				return
			}
			if appErr == nil {
				t.Fatal("expected validation error")
			}
			if appErr.Code != tc.wantCode {
				t.Errorf("got code %s, want %s", appErr.Code, tc.wantCode)
			}
			if appErr.Status != 400 {
				t.Errorf("got status %d, want 400", appErr.Status)
			}
		})
	}
}

func TestValidateCreate_TrimsStrings(t *testing.T) {
	students := catalogEntity(t, "students")
	fields, appErr := ValidateCreate(students, map[string]any{
		"customId": "  S1  ", "name": " Asha ", "department": "CS", "password": "p",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if fields["customId"] != "S1" || fields["name"] != "Asha" {
		t.Errorf("expected trimmed values, got %v / %v", fields["customId"], fields["name"])
	}
}

func TestValidateCreate_OptionalDefaults(t *testing.T) {
	coords := catalogEntity(t, "coordinators")
	fields, appErr := ValidateCreate(coords, map[string]any{
		"customId": "COORD1001", "name": "A", "department": "CS", "password": "p",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if fields["isActive"] != true {
		t.Errorf("omitted isActive should default true, got %v", fields["isActive"])
	}

	// Non-boolean isActive falls back to the default on create.
	fields, appErr = ValidateCreate(coords, map[string]any{
		"customId": "COORD1001", "name": "A", "department": "CS", "password": "p",
		"isActive": "yes",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if fields["isActive"] != true {
		t.Errorf("non-boolean isActive should default true on create, got %v", fields["isActive"])
	}

	programs := catalogEntity(t, "programs")
	fields, appErr = ValidateCreate(programs, map[string]any{
		"title": "T", "description": "D", "date": "2025-01-01", "time": "10:00", "venue": "Hall",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	list, ok := fields["coordinatorIds"].([]any)
	if !ok || len(list) != 0 {
		t.Errorf("omitted id list should default to empty array, got %v", fields["coordinatorIds"])
	}
}

func TestValidateCreate_Enum(t *testing.T) {
	activities := catalogEntity(t, "student-activities")
	base := map[string]any{
		"studentCustomId": "S1", "title": "T", "content": "C",
	}

	base["badge"] = "green"
	if _, appErr := ValidateCreate(activities, base); appErr != nil {
		t.Fatalf("green badge should pass: %v", appErr.Message)
	}

	base["badge"] = "red"
	_, appErr := ValidateCreate(activities, base)
	if appErr == nil || appErr.Code != "INVALID_BADGE" {
		t.Fatalf("red badge should fail with INVALID_BADGE, got %v", appErr)
	}
}

func TestValidateCreate_IntRef(t *testing.T) {
	albums := catalogEntity(t, "story-albums")

	fields, appErr := ValidateCreate(albums, map[string]any{"batchId": "3", "name": "N"})
	if appErr != nil {
		t.Fatalf("numeric string batchId should pass: %v", appErr.Message)
	}
	if fields["batchId"] != int64(3) {
		t.Errorf("batchId should normalize to int64, got %T %v", fields["batchId"], fields["batchId"])
	}

	_, appErr = ValidateCreate(albums, map[string]any{"batchId": "abc", "name": "N"})
	if appErr == nil || appErr.Code != "INVALID_BATCH_ID" {
		t.Fatalf("non-numeric batchId should fail with INVALID_BATCH_ID, got %v", appErr)
	}

	_, appErr = ValidateCreate(albums, map[string]any{"batchId": 1.5, "name": "N"})
	if appErr == nil || appErr.Code != "INVALID_BATCH_ID" {
		t.Fatalf("fractional batchId should fail, got %v", appErr)
	}
}

func TestValidateUpdate_PresentKeysOnly(t *testing.T) {
	students := catalogEntity(t, "students")

	fields, appErr := ValidateUpdate(students, map[string]any{"name": "New Name"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if len(fields) != 1 || fields["name"] != "New Name" {
		t.Errorf("expected only name in change-set, got %v", fields)
	}

	// Immutable customId is silently dropped.
	fields, appErr = ValidateUpdate(students, map[string]any{"customId": "S2", "name": "N"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if _, present := fields["customId"]; present {
		t.Error("customId must not enter an update change-set")
	}

	// Unknown keys are ignored.
	fields, appErr = ValidateUpdate(students, map[string]any{"role": "admin"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if len(fields) != 0 {
		t.Errorf("unknown keys should be ignored, got %v", fields)
	}
}

func TestValidateUpdate_Nulls(t *testing.T) {
	students := catalogEntity(t, "students")

	// Nullable field accepts explicit null.
	fields, appErr := ValidateUpdate(students, map[string]any{"profileImageUrl": nil})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	val, present := fields["profileImageUrl"]
	if !present || val != nil {
		t.Errorf("null profileImageUrl should clear the field, got %v", val)
	}

	// Empty string also clears it.
	fields, appErr = ValidateUpdate(students, map[string]any{"profileImageUrl": "  "})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if fields["profileImageUrl"] != nil {
		t.Errorf("blank profileImageUrl should clear the field, got %v", fields["profileImageUrl"])
	}

	// Non-nullable fields reject null.
	_, appErr = ValidateUpdate(students, map[string]any{"name": nil})
	if appErr == nil || appErr.Code != "INVALID_NAME" {
		t.Fatalf("null name should fail with INVALID_NAME, got %v", appErr)
	}
}

func TestValidateUpdate_StrictBoolean(t *testing.T) {
	coords := catalogEntity(t, "coordinators")

	fields, appErr := ValidateUpdate(coords, map[string]any{"isActive": false})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if fields["isActive"] != false {
		t.Errorf("isActive false should pass through, got %v", fields["isActive"])
	}

	_, appErr = ValidateUpdate(coords, map[string]any{"isActive": "yes"})
	if appErr == nil || appErr.Code != "INVALID_IS_ACTIVE" {
		t.Fatalf("non-boolean isActive on update should fail, got %v", appErr)
	}
}
