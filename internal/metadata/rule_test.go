package metadata

import "testing"

func compileRule(t *testing.T, r *Rule) {
	t.Helper()
	if err := r.Compile(); err != nil {
		t.Fatalf("compile rule: %v", err)
	}
}

func TestRuleEval_FormatMatch(t *testing.T) {
	r := Rule{
		Name: "customId format", On: "create",
		Expr: `record.customId matches "^COORD[0-9]+$"`,
	}
	compileRule(t, &r)

	cases := []struct {
		customID string
		want     bool
	}{
		{"COORD1001", true},
		{"COORD1", true},
		{"X1", false},
		{"coord1001", false},
		{"COORD", false},
		{"COORD1001x", false},
	}
	for _, tc := range cases {
		ok, err := r.Eval(map[string]any{"customId": tc.customID}, "create")
		if err != nil {
			t.Fatalf("eval %q: %v", tc.customID, err)
		}
		if ok != tc.want {
			t.Errorf("eval %q: got %v, want %v", tc.customID, ok, tc.want)
		}
	}
}

func TestRuleAppliesTo(t *testing.T) {
	createOnly := Rule{On: "create"}
	if !createOnly.AppliesTo("create") {
		t.Error("create rule should apply to create")
	}
	if createOnly.AppliesTo("update") {
		t.Error("create rule should not apply to update")
	}

	both := Rule{On: ""}
	if !both.AppliesTo("create") || !both.AppliesTo("update") {
		t.Error("unscoped rule should apply to both actions")
	}
}

func TestRuleEval_NonBooleanExpressionFailsAtRuntime(t *testing.T) {
	// Record members are untyped maps, so a non-boolean expression
	// passes compilation and only fails when evaluated.
	r := Rule{Name: "bad", Expr: `record.customId`}
	if err := r.Compile(); err != nil {
		t.Fatalf("compile should succeed against the untyped record: %v", err)
	}
	if _, err := r.Eval(map[string]any{"customId": "COORD1001"}, "create"); err == nil {
		t.Fatal("expected an evaluation error for a non-boolean expression")
	}
}

func TestRegistryLoad_CompilesCatalogRules(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Load(DefaultCatalog()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	coord := reg.GetEntity("coordinators")
	if coord == nil {
		t.Fatal("coordinators not registered")
	}
	if len(coord.Rules) != 1 {
		t.Fatalf("expected 1 coordinator rule, got %d", len(coord.Rules))
	}
	ok, err := coord.Rules[0].Eval(map[string]any{"customId": "COORD1001"}, "create")
	if err != nil {
		t.Fatalf("eval compiled catalog rule: %v", err)
	}
	if !ok {
		t.Error("COORD1001 should pass the format rule")
	}
}

func TestRegistryLoad_RejectsDuplicateNames(t *testing.T) {
	reg := NewRegistry()
	err := reg.Load([]*Entity{
		{Name: "things", Table: "things"},
		{Name: "things", Table: "things_2"},
	})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestEntityColumns_AliasToJSONNames(t *testing.T) {
	e := &Entity{
		Name: "students",
		Fields: []Field{
			{Name: "customId", Column: "custom_id", Kind: KindString},
			{Name: "name", Column: "name", Kind: KindString},
		},
	}
	cols := e.Columns()
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if cols[0] != "id" {
		t.Errorf("first column should be id, got %s", cols[0])
	}
	if cols[1] != `custom_id AS "customId"` {
		t.Errorf("unexpected alias: %s", cols[1])
	}
}

func TestEntityUpdatableFields_SkipsImmutableAndAuto(t *testing.T) {
	e := &Entity{
		Fields: []Field{
			{Name: "customId", Kind: KindString, Immutable: true},
			{Name: "name", Kind: KindString},
			{Name: "createdAt", Kind: KindString, Auto: "create"},
			{Name: "updatedAt", Kind: KindString, Auto: "update"},
		},
	}
	fields := e.UpdatableFields()
	if len(fields) != 1 || fields[0].Name != "name" {
		t.Fatalf("expected only name to be updatable, got %v", fields)
	}
	if !e.TouchesUpdatedAt() {
		t.Error("entity with auto update field should touch updatedAt")
	}
}
