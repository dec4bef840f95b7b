package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) Name() string {
	return "sqlite"
}

func (i *Inspector) ListTables(ctx context.Context, q source.Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// DescribeColumns runs PRAGMA table_info. The table name is interpolated as
// is; SQLite returns no rows for a table that does not exist.
func (i *Inspector) DescribeColumns(ctx context.Context, q source.Querier, tableName string) ([]types.Column, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []types.Column
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, dataType   string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &dataType, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		col := types.Column{
			Position:   cid,
			Name:       name,
			Type:       dataType,
			Nullable:   notnull == 0,
			PrimaryKey: pk > 0,
		}
		if dflt.Valid {
			v := dflt.String
			col.Default = &v
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
