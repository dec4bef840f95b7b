// Package drift compares a requested column spec with the live schema of a
// table. CreateTableIfAbsent never does this itself; the report is advisory.
package drift

import (
	"strings"

	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

type Issue struct {
	Table    string
	Column   string
	Kind     string
	Severity string
	Message  string
	FromType string
	ToType   string
}

type Report struct {
	Table  string
	Issues []Issue
}

// Blocking reports whether any issue has BLOCK severity.
func (r *Report) Blocking() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RequestedColumn is what Compare understands of one column definition.
type RequestedColumn struct {
	Name    string
	Type    string
	NotNull bool
}

var tableConstraintKeywords = map[string]bool{
	"PRIMARY": true, "UNIQUE": true, "CHECK": true, "FOREIGN": true, "CONSTRAINT": true,
}

var columnConstraintKeywords = map[string]bool{
	"NOT": true, "NULL": true, "PRIMARY": true, "UNIQUE": true, "DEFAULT": true, "CHECK": true,
	"REFERENCES": true, "COLLATE": true, "CONSTRAINT": true, "GENERATED": true, "AS": true,
	"AUTO_INCREMENT": true, "AUTOINCREMENT": true,
}

// ParseFragment extracts name, declared type and NOT NULL from a raw column
// definition. Table constraints report ok == false.
func ParseFragment(fragment string) (RequestedColumn, bool) {
	fields := strings.Fields(fragment)
	if len(fields) == 0 || tableConstraintKeywords[strings.ToUpper(fields[0])] {
		return RequestedColumn{}, false
	}

	col := RequestedColumn{Name: strings.Trim(fields[0], "`\"'[]")}
	var typeParts []string
	for _, f := range fields[1:] {
		if columnConstraintKeywords[strings.ToUpper(f)] {
			break
		}
		typeParts = append(typeParts, f)
	}
	col.Type = strings.Join(typeParts, " ")
	col.NotNull = strings.Contains(strings.ToUpper(strings.Join(fields[1:], " ")), "NOT NULL")
	return col, true
}

// Compare reports how the live columns of table differ from the requested
// column definitions.
func Compare(table string, live []types.Column, requested []string) *Report {
	report := &Report{Table: table}
	liveByName := map[string]types.Column{}
	for _, col := range live {
		liveByName[strings.ToLower(col.Name)] = col
	}

	seen := map[string]bool{}
	for _, fragment := range requested {
		req, ok := ParseFragment(fragment)
		if !ok {
			continue
		}
		key := strings.ToLower(req.Name)
		seen[key] = true

		col, ok := liveByName[key]
		if !ok {
			report.add(table, req.Name, "column_missing", "", req.Type)
			continue
		}
		if !sameType(col.Type, req.Type) {
			report.add(table, col.Name, "type_changed", col.Type, req.Type)
		}
		// engines disagree on whether a primary key is implicitly NOT NULL
		switch {
		case col.PrimaryKey:
		case !col.Nullable && !req.NotNull:
			report.add(table, col.Name, "nullable_to_notnull", "", "")
		case col.Nullable && req.NotNull:
			report.add(table, col.Name, "notnull_to_nullable", "", "")
		}
	}

	for _, col := range live {
		if !seen[strings.ToLower(col.Name)] {
			report.add(table, col.Name, "column_extra", col.Type, "")
		}
	}
	return report
}

func (r *Report) add(table, column, kind, from, to string) {
	r.Issues = append(r.Issues, Issue{
		Table:    table,
		Column:   column,
		Kind:     kind,
		Severity: SeverityForChange(kind),
		Message:  MessageForChange(kind, from, to),
		FromType: from,
		ToType:   to,
	})
}

func sameType(a, b string) bool {
	strip := func(s string) string {
		return strings.ReplaceAll(s, " ", "")
	}
	return strings.EqualFold(strip(a), strip(b))
}
