package mysql

import (
	"context"
	"database/sql"
	"os"
	"testing"
)

func TestColumnFromRow(t *testing.T) {
	col := columnFromRow(1, "id", "int", "NO", "PRI", sql.NullString{})
	if col.Position != 0 || col.Name != "id" || col.Type != "int" {
		t.Fatalf("unexpected column: %+v", col)
	}
	if col.Nullable || !col.PrimaryKey || col.Default != nil {
		t.Fatalf("expected NOT NULL primary key without default: %+v", col)
	}

	col = columnFromRow(3, "note", "varchar(20)", "YES", "", sql.NullString{String: "a,b", Valid: true})
	if col.Position != 2 || !col.Nullable || col.PrimaryKey {
		t.Fatalf("unexpected column: %+v", col)
	}
	if col.Default == nil || *col.Default != "a,b" {
		t.Fatalf("expected default a,b, got %v", col.Default)
	}

	// MUL and UNI keys are not primary keys
	if col := columnFromRow(2, "ref", "int", "YES", "MUL", sql.NullString{}); col.PrimaryKey {
		t.Fatalf("MUL key reported as primary key: %+v", col)
	}
}

// TestInspector_Live runs against a real server when TABLEKIT_MYSQL_DSN is set,
// e.g. "root:secret@tcp(127.0.0.1:3306)/tablekit".
func TestInspector_Live(t *testing.T) {
	dsn := os.Getenv("TABLEKIT_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TABLEKIT_MYSQL_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS tablekit_inspect"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE tablekit_inspect(id INT PRIMARY KEY, note VARCHAR(20) DEFAULT 'x', qty INT NOT NULL)"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.ExecContext(context.Background(), "DROP TABLE IF EXISTS tablekit_inspect") })

	insp := NewInspector("")
	tables, err := insp.ListTables(ctx, db)
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	found := false
	for _, name := range tables {
		if name == "tablekit_inspect" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tablekit_inspect not listed in %v", tables)
	}

	cols, err := insp.DescribeColumns(ctx, db, "tablekit_inspect")
	if err != nil {
		t.Fatalf("describe columns: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %+v", cols)
	}
	if cols[0].Name != "id" || !cols[0].PrimaryKey || cols[0].Nullable {
		t.Fatalf("unexpected id column: %+v", cols[0])
	}
	if cols[1].Position != 1 || !cols[1].Nullable || cols[1].Default == nil || *cols[1].Default != "x" {
		t.Fatalf("unexpected note column: %+v", cols[1])
	}
	if cols[2].Nullable {
		t.Fatalf("expected qty NOT NULL: %+v", cols[2])
	}
}
