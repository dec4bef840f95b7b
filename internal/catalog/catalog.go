// Package catalog creates tables, inspects their columns, inserts validated
// rows and reads whole tables back.
//
// A Catalog holds only the engine dialect. The statement handle is passed to
// every call, so opening, committing and closing stay with the caller.
// Table and column names are interpolated into statements without quoting or
// sanitizing and must come from trusted input; values are always bound as
// parameters.
package catalog

import (
	"github.com/alexanderjulianmartinez/tablekit/internal/source"
)

type Catalog struct {
	dialect source.Dialect
}

func New(dialect source.Dialect) *Catalog {
	return &Catalog{dialect: dialect}
}

func (c *Catalog) Dialect() source.Dialect {
	return c.dialect
}
