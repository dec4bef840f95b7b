package catalog

import (
	"context"
	"slices"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// ListTables returns the names of all tables in the catalog.
func (c *Catalog) ListTables(ctx context.Context, q source.Querier) ([]string, error) {
	return c.dialect.ListTables(ctx, q)
}

// ColumnInfo returns the columns of tableName in position order. Nothing is
// cached; every call queries the catalog again.
func (c *Catalog) ColumnInfo(ctx context.Context, q source.Querier, tableName string) ([]types.Column, error) {
	tables, err := c.ListTables(ctx, q)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(tables, tableName) {
		return nil, &UnknownTableError{Table: tableName}
	}

	cols, err := c.dialect.DescribeColumns(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(cols, func(a, b types.Column) int {
		return a.Position - b.Position
	})
	return cols, nil
}

func (c *Catalog) ColumnNames(ctx context.Context, q source.Querier, tableName string) ([]string, error) {
	cols, err := c.ColumnInfo(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	return columnNames(cols), nil
}

// ColumnNullabilities reports, aligned with ColumnNames, whether each column
// accepts NULL.
func (c *Catalog) ColumnNullabilities(ctx context.Context, q source.Querier, tableName string) ([]bool, error) {
	cols, err := c.ColumnInfo(ctx, q, tableName)
	if err != nil {
		return nil, err
	}
	nullable := make([]bool, len(cols))
	for i, col := range cols {
		nullable[i] = col.Nullable
	}
	return nullable, nil
}

func columnNames(cols []types.Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}
