package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
)

// ColumnSpec is the column list handed to CreateTableIfAbsent: either a
// SpecString or a SpecList. Fragments are raw engine-specific definitions
// ("name TYPE constraints") and are not parsed.
type ColumnSpec interface {
	// Fragments returns the normalized, non-empty column definitions.
	Fragments() []string
	columnSpec()
}

// SpecString is a single comma-separated list of column definitions.
type SpecString string

// SpecList is an ordered list of column definitions, one per entry.
type SpecList []string

// Fragments splits on commas outside parentheses and quotes, so
// "price DECIMAL(10,2)" and "note TEXT DEFAULT 'a,b'" each stay one definition.
func (s SpecString) Fragments() []string {
	var parts []string
	depth, start := 0, 0
	var quote rune
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			parts = append(parts, string(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, string(s[start:]))
	return normalizeFragments(parts)
}

func (s SpecList) Fragments() []string {
	return normalizeFragments(s)
}

func (SpecString) columnSpec() {}
func (SpecList) columnSpec()   {}

func normalizeFragments(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, ", \t\r\n")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ColumnSpecOf resolves loosely typed input, such as decoded YAML or JSON,
// into a ColumnSpec.
func ColumnSpecOf(v any) (ColumnSpec, error) {
	switch s := v.(type) {
	case ColumnSpec:
		return s, nil
	case string:
		return SpecString(s), nil
	case []string:
		return SpecList(s), nil
	case []any:
		list := make(SpecList, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, &InvalidColumnSpecError{
					Value:  v,
					Reason: fmt.Sprintf("list entries must be strings, found %T", item),
				}
			}
			list = append(list, str)
		}
		return list, nil
	default:
		return nil, &InvalidColumnSpecError{Value: v}
	}
}

// CreateTableIfAbsent creates tableName with the given columns unless a table
// of that name already exists. An existing table is left untouched and its
// schema is not compared with spec.
func (c *Catalog) CreateTableIfAbsent(ctx context.Context, q source.Querier, tableName string, spec ColumnSpec) error {
	if spec == nil {
		return &InvalidColumnSpecError{Value: spec}
	}
	fragments := spec.Fragments()

	tables, err := c.ListTables(ctx, q)
	if err != nil {
		return err
	}
	if slices.Contains(tables, tableName) {
		return nil
	}
	if len(fragments) == 0 {
		return &InvalidColumnSpecError{Value: spec, Reason: "no column definitions"}
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(%s)", tableName, strings.Join(fragments, ","))
	_, err = q.ExecContext(ctx, stmt)
	return err
}
