package catalog

import (
	"context"
	"fmt"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// ReadTable returns every row of tableName in engine order, paired with the
// table's column names.
func (c *Catalog) ReadTable(ctx context.Context, q source.Querier, tableName string) (*types.TabularResult, error) {
	names, err := c.ColumnNames(ctx, q, tableName)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fetched, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(names) {
		return nil, fmt.Errorf("table %s returned %d columns, catalog lists %d", tableName, len(fetched), len(names))
	}

	res := &types.TabularResult{Columns: names, Rows: [][]any{}}
	for rows.Next() {
		row := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				row[i] = append([]byte(nil), b...)
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}
