package drift

import (
	"testing"

	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

func TestColumnMissing(t *testing.T) {
	live := []types.Column{{Name: "a", Type: "INTEGER", Nullable: true}}
	rep := Compare("t1", live, []string{"a INTEGER", "b TEXT"})
	if len(rep.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", rep.Issues)
	}
	iss := rep.Issues[0]
	if iss.Kind != "column_missing" || iss.Column != "b" || iss.Severity != SeverityBlock {
		t.Fatalf("unexpected issue: %+v", iss)
	}
	if !rep.Blocking() {
		t.Fatalf("expected blocking report")
	}
}

func TestColumnExtra(t *testing.T) {
	live := []types.Column{{Name: "a", Nullable: true}, {Name: "b", Type: "varchar", Nullable: true}}
	rep := Compare("t1", live, []string{"a"})
	if len(rep.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", rep.Issues)
	}
	iss := rep.Issues[0]
	if iss.Severity != SeverityForChange("column_extra") || iss.Column != "b" {
		t.Fatalf("unexpected issue: %+v", iss)
	}
	if rep.Blocking() {
		t.Fatalf("extra column must not block")
	}
}

func TestTypeChanged(t *testing.T) {
	live := []types.Column{{Name: "a", Type: "int", Nullable: true}}
	rep := Compare("t1", live, []string{"a VARCHAR(10)"})
	if len(rep.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", rep.Issues)
	}
	iss := rep.Issues[0]
	if iss.Severity != SeverityForChange("type_changed") {
		t.Fatalf("expected severity %s, got %s", SeverityForChange("type_changed"), iss.Severity)
	}
	if iss.FromType != "int" || iss.ToType != "VARCHAR(10)" {
		t.Fatalf("unexpected types from=%s to=%s", iss.FromType, iss.ToType)
	}
}

func TestTypeComparisonIgnoresCaseAndSpaces(t *testing.T) {
	live := []types.Column{{Name: "price", Type: "decimal(10,2)", Nullable: true}}
	rep := Compare("t1", live, []string{"price DECIMAL(10, 2)"})
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", rep.Issues)
	}
}

func TestNullableToNotNull(t *testing.T) {
	live := []types.Column{{Name: "a", Type: "int", Nullable: false}}
	rep := Compare("t1", live, []string{"a int"})
	if len(rep.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(rep.Issues))
	}
	if rep.Issues[0].Severity != SeverityForChange("nullable_to_notnull") {
		t.Fatalf("expected severity %s, got %s", SeverityForChange("nullable_to_notnull"), rep.Issues[0].Severity)
	}
}

func TestNotNullToNullable(t *testing.T) {
	live := []types.Column{{Name: "a", Type: "int", Nullable: true}}
	rep := Compare("t1", live, []string{"a int NOT NULL DEFAULT 0"})
	if len(rep.Issues) != 1 || rep.Issues[0].Kind != "notnull_to_nullable" {
		t.Fatalf("expected notnull_to_nullable, got %v", rep.Issues)
	}
	if rep.Issues[0].Severity != SeverityWarn {
		t.Fatalf("expected WARN, got %s", rep.Issues[0].Severity)
	}
}

func TestPrimaryKeyNullabilityIgnored(t *testing.T) {
	// mysql reports an implicit NOT NULL, sqlite leaves non-integer keys nullable
	live := []types.Column{
		{Name: "id", Type: "int", Nullable: false, PrimaryKey: true},
		{Name: "code", Type: "text", Nullable: true, PrimaryKey: true},
	}
	rep := Compare("t1", live, []string{"id INT PRIMARY KEY", "code TEXT NOT NULL"})
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", rep.Issues)
	}
	if rep.Blocking() {
		t.Fatalf("primary key must not block")
	}
}

func TestMatchingSchemaNoIssues(t *testing.T) {
	live := []types.Column{
		{Name: "toolname", Nullable: true},
		{Name: "arguments", Nullable: true},
	}
	rep := Compare("tools", live, []string{"toolname", "arguments", "PRIMARY KEY (toolname)"})
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", rep.Issues)
	}
}

func TestParseFragment(t *testing.T) {
	cases := []struct {
		in   string
		want RequestedColumn
		ok   bool
	}{
		{in: "id INTEGER PRIMARY KEY", want: RequestedColumn{Name: "id", Type: "INTEGER"}, ok: true},
		{in: "`name` varchar(20) NOT NULL", want: RequestedColumn{Name: "name", Type: "varchar(20)", NotNull: true}, ok: true},
		{in: "\"note\"", want: RequestedColumn{Name: "note"}, ok: true},
		{in: "UNIQUE (a, b)", ok: false},
		{in: "   ", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseFragment(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseFragment(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseFragment(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}
