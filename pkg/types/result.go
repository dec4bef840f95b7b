package types

// Column describes one column of a table as reported by the engine catalog.
type Column struct {
	Position   int
	Name       string
	Type       string
	Nullable   bool
	Default    *string
	PrimaryKey bool
}

// TabularResult is a detached snapshot of a table: column names plus rows
// aligned to those columns.
type TabularResult struct {
	Columns []string
	Rows    [][]any
}

func (r *TabularResult) Len() int {
	return len(r.Rows)
}

// Column returns every value of the named column in row order.
func (r *TabularResult) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range r.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Records returns the rows keyed by column name.
func (r *TabularResult) Records() []map[string]any {
	out := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make(map[string]any, len(r.Columns))
		for i, c := range r.Columns {
			rec[c] = row[i]
		}
		out = append(out, rec)
	}
	return out
}
