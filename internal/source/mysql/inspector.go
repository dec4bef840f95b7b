package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alexanderjulianmartinez/tablekit/internal/source"
	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// Inspector reads table metadata from INFORMATION_SCHEMA. An empty schema
// means the connection's current database.
type Inspector struct {
	schema string
}

func NewInspector(schema string) *Inspector {
	return &Inspector{schema: schema}
}

func (i *Inspector) Name() string {
	return "mysql"
}

func (i *Inspector) ListTables(ctx context.Context, q source.Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_TYPE = 'BASE TABLE'
	`, i.schema)
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

func (i *Inspector) DescribeColumns(ctx context.Context, q source.Querier, tableName string) ([]types.Column, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT ORDINAL_POSITION, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT, COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []types.Column
	for rows.Next() {
		var (
			position                 int
			name, dataType, nullable string
			key                      string
			dflt                     sql.NullString
		)
		if err := rows.Scan(&position, &name, &dataType, &nullable, &dflt, &key); err != nil {
			return nil, err
		}
		cols = append(cols, columnFromRow(position, name, dataType, nullable, key, dflt))
	}
	return cols, rows.Err()
}

// columnFromRow maps one INFORMATION_SCHEMA.COLUMNS row onto a Column.
func columnFromRow(position int, name, dataType, nullable, key string, dflt sql.NullString) types.Column {
	col := types.Column{
		// ORDINAL_POSITION is 1-based
		Position:   position - 1,
		Name:       name,
		Type:       dataType,
		Nullable:   nullable == "YES",
		PrimaryKey: key == "PRI",
	}
	if dflt.Valid {
		v := dflt.String
		col.Default = &v
	}
	return col
}
