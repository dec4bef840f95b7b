package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned for a validation mode other than STRICT or RELAXED.
var ErrUnknownMode = errors.New("unknown validation mode")

// InvalidColumnSpecError reports a column spec of unsupported shape, or one
// that yields no column definitions for a new table.
type InvalidColumnSpecError struct {
	Value  any
	Reason string
}

func (e *InvalidColumnSpecError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid column spec: %s", e.Reason)
	}
	return fmt.Sprintf("invalid column spec: must be a string or a list of strings, not %T", e.Value)
}

type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Table)
}

// UnknownColumnError reports a record key that names no column of the table.
type UnknownColumnError struct {
	Table   string
	Column  string
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q not in table %s columns: [%s]", e.Column, e.Table, strings.Join(e.Columns, ", "))
}

// SchemaMismatchError reports a STRICT insert whose record does not supply
// every column of the table.
type SchemaMismatchError struct {
	Table   string
	Missing []string
	Columns []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("record for %s does not match table columns [%s]: missing [%s]",
		e.Table, strings.Join(e.Columns, ", "), strings.Join(e.Missing, ", "))
}

type NotNullViolationError struct {
	Table  string
	Column string
}

func (e *NotNullViolationError) Error() string {
	return fmt.Sprintf("column %s.%s does not accept NULL values", e.Table, e.Column)
}
