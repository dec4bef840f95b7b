package source

import (
	"context"
	"database/sql"

	"github.com/alexanderjulianmartinez/tablekit/pkg/types"
)

// Querier is the statement handle every catalog call runs against.
// *sql.DB, *sql.Tx and *sql.Conn all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Dialect is the catalog capability set of one engine.
type Dialect interface {
	Name() string
	// ListTables returns the names of all base tables.
	ListTables(ctx context.Context, q Querier) ([]string, error)
	// DescribeColumns returns the columns of table in position order. An
	// unknown table may yield an empty slice rather than an error.
	DescribeColumns(ctx context.Context, q Querier, table string) ([]types.Column, error)
}
