package catalog

import (
	"context"
	"database/sql/driver"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
)

// Record maps column names to the values of one row.
type Record map[string]any

// Mode selects how AddRow treats columns missing from a record.
type Mode int

const (
	// Strict requires the record to name exactly the table's columns.
	Strict Mode = iota
	// Relaxed fills missing columns with NULL and rejects NULL for NOT NULL columns.
	Relaxed
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "STRICT"
	case Relaxed:
		return "RELAXED"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "strict" or "relaxed" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STRICT":
		return Strict, nil
	case "RELAXED":
		return Relaxed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// AddRow validates record against the current columns of tableName and
// inserts it as one row. The surrounding transaction is not committed.
//
// Validation and insert are separate round trips; a schema change in between
// surfaces as an engine error from the insert.
func (c *Catalog) AddRow(ctx context.Context, q source.Querier, tableName string, record Record, mode Mode) error {
	if mode != Strict && mode != Relaxed {
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	cols, err := c.ColumnInfo(ctx, q, tableName)
	if err != nil {
		return err
	}
	names := columnNames(cols)

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(names, k) {
			return &UnknownColumnError{Table: tableName, Column: k, Columns: names}
		}
	}

	values := make([]any, len(cols))
	switch mode {
	case Strict:
		var missing []string
		for _, name := range names {
			if _, ok := record[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return &SchemaMismatchError{Table: tableName, Missing: missing, Columns: names}
		}
		for i, name := range names {
			values[i] = record[name]
		}
	case Relaxed:
		for i, col := range cols {
			v := record[col.Name]
			if !col.Nullable && isNull(v) {
				return &NotNullViolationError{Table: tableName, Column: col.Name}
			}
			values[i] = v
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(names, ","), placeholders)
	_, err = q.ExecContext(ctx, stmt, values...)
	return err
}

// isNull reports whether database/sql would bind v as NULL: nil, a nil
// pointer, a Valuer yielding nil, or a pointer to any of those.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		return err == nil && dv == nil
	}
	if rv.Kind() == reflect.Pointer {
		return isNull(rv.Elem().Interface())
	}
	return false
}
