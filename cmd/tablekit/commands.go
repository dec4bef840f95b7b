package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/alexanderjulianmartinez/tablekit/internal/catalog"
	"github.com/alexanderjulianmartinez/tablekit/internal/cdc"
	"github.com/alexanderjulianmartinez/tablekit/internal/drift"
	"github.com/alexanderjulianmartinez/tablekit/internal/export"
)

func runTables(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("tables", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	tables, err := a.catalog.ListTables(ctx, a.db)
	if err != nil {
		return err
	}
	for _, t := range tables {
		fmt.Fprintln(stdout, t)
	}
	return nil
}

func runDescribe(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("describe", stderr)
	table := fs.String("table", "", "Table name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table == "" {
		return fmt.Errorf("missing required flag: --table")
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	cols, err := a.catalog.ColumnInfo(ctx, a.db, *table)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "cid\tname\ttype\tnullable\tdefault\tpk")
	for _, c := range cols {
		dflt := "NULL"
		if c.Default != nil {
			dflt = *c.Default
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%t\n", c.Position, c.Name, c.Type, c.Nullable, dflt, c.PrimaryKey)
	}
	return tw.Flush()
}

func runCreate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("create", stderr)
	table := fs.String("table", "", "Table name (default: every table in the config)")
	columns := fs.String("columns", "", "Comma-separated column definitions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	type request struct {
		name string
		spec catalog.ColumnSpec
	}
	var requests []request
	switch {
	case *table != "" && *columns != "":
		requests = append(requests, request{*table, catalog.SpecString(*columns)})
	case *table != "":
		tc, ok := a.tableConfig(*table)
		if !ok {
			return fmt.Errorf("table %s is not configured; pass --columns", *table)
		}
		spec, err := tc.Spec()
		if err != nil {
			return err
		}
		requests = append(requests, request{tc.Name, spec})
	default:
		if len(a.cfg.Tables) == 0 {
			return fmt.Errorf("missing required flag: --table")
		}
		for _, tc := range a.cfg.Tables {
			spec, err := tc.Spec()
			if err != nil {
				return err
			}
			requests = append(requests, request{tc.Name, spec})
		}
	}

	return a.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := a.catalog.ListTables(ctx, tx)
		if err != nil {
			return err
		}
		for _, r := range requests {
			if slices.Contains(existing, r.name) {
				// creation is a no-op; only report how the live table differs
				if err := warnDrift(ctx, a, tx, r.name, r.spec); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "table %s already exists\n", r.name)
				continue
			}
			if err := a.catalog.CreateTableIfAbsent(ctx, tx, r.name, r.spec); err != nil {
				return fmt.Errorf("create table %s: %w", r.name, err)
			}
			a.logger.Info("table created", "table", r.name, "columns", len(r.spec.Fragments()))
			fmt.Fprintf(stdout, "table %s created\n", r.name)
		}
		return nil
	})
}

func warnDrift(ctx context.Context, a *app, q *sql.Tx, table string, spec catalog.ColumnSpec) error {
	live, err := a.catalog.ColumnInfo(ctx, q, table)
	if err != nil {
		return err
	}
	report := drift.Compare(table, live, spec.Fragments())
	for _, iss := range report.Issues {
		a.logger.Warn("existing table differs from requested columns",
			"table", iss.Table, "column", iss.Column, "severity", iss.Severity, "detail", iss.Message)
	}
	return nil
}

func runInsert(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("insert", stderr)
	table := fs.String("table", "", "Table name")
	record := fs.String("record", "", `Row as a JSON object, e.g. '{"toolname":"mytool"}'`)
	modeFlag := fs.String("mode", "", "Validation mode: strict or relaxed (default: table config, else strict)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table == "" {
		return fmt.Errorf("missing required flag: --table")
	}
	if *record == "" {
		return fmt.Errorf("missing required flag: --record")
	}
	rec, err := decodeRecord(*record)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	modeName := *modeFlag
	if modeName == "" {
		modeName = "strict"
		if tc, ok := a.tableConfig(*table); ok && tc.Mode != "" {
			modeName = tc.Mode
		}
	}
	mode, err := catalog.ParseMode(modeName)
	if err != nil {
		return err
	}

	err = a.inTx(ctx, func(tx *sql.Tx) error {
		return a.catalog.AddRow(ctx, tx, *table, rec, mode)
	})
	if err != nil {
		return err
	}
	a.logger.Info("row inserted", "table", *table, "mode", mode.String())
	a.publish(ctx, cdc.NewInsert(*table, rec))
	fmt.Fprintf(stdout, "1 row inserted into %s\n", *table)
	return nil
}

// decodeRecord parses a JSON object, keeping integers as int64 rather than
// float64.
func decodeRecord(s string) (catalog.Record, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if raw == nil {
		return nil, errors.New("parse record: expected a JSON object")
	}
	rec := make(catalog.Record, len(raw))
	for k, v := range raw {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				rec[k] = i
				continue
			}
			if f, err := n.Float64(); err == nil {
				rec[k] = f
				continue
			}
			rec[k] = n.String()
			continue
		}
		rec[k] = v
	}
	return rec, nil
}

func runRead(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("read", stderr)
	table := fs.String("table", "", "Table name")
	format := fs.String("format", export.FormatText, "Output format: text, csv or parquet")
	out := fs.String("out", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table == "" {
		return fmt.Errorf("missing required flag: --table")
	}
	if *format == export.FormatParquet && *out == "" {
		return fmt.Errorf("parquet output requires --out")
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.catalog.ReadTable(ctx, a.db, *table)
	if err != nil {
		return err
	}

	if *out == "" {
		err = export.Write(stdout, res, *format)
	} else {
		err = writeFile(*out, func(w io.Writer) error {
			return export.Write(w, res, *format)
		})
	}
	if err != nil {
		return err
	}
	a.logger.Debug("table read", "table", *table, "rows", res.Len(), "format", *format)
	return nil
}

// writeFile creates path and hands it to write. A failed close is reported
// since buffered output may not have reached disk.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()
	return write(f)
}

func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("check", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("missing required flag: --config")
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(a.cfg.Tables) == 0 {
		return fmt.Errorf("no tables configured")
	}

	blocking := 0
	for _, tc := range a.cfg.Tables {
		spec, err := tc.Spec()
		if err != nil {
			return err
		}
		live, err := a.catalog.ColumnInfo(ctx, a.db, tc.Name)
		var unknown *catalog.UnknownTableError
		switch {
		case errors.As(err, &unknown):
			fmt.Fprintf(stdout, "%-5s %s: table missing\n", drift.SeverityBlock, tc.Name)
			blocking++
			continue
		case err != nil:
			return err
		}

		report := drift.Compare(tc.Name, live, spec.Fragments())
		if len(report.Issues) == 0 {
			fmt.Fprintf(stdout, "%-5s %s: ok\n", "OK", tc.Name)
		}
		for _, iss := range report.Issues {
			fmt.Fprintf(stdout, "%-5s %s.%s: %s\n", iss.Severity, iss.Table, iss.Column, iss.Message)
		}
		if report.Blocking() {
			blocking++
		}
	}

	if blocking > 0 {
		return fmt.Errorf("%d table(s) with blocking drift", blocking)
	}
	return nil
}

var demoColumns = catalog.SpecList{"toolname", "arguments", "date", "user", "execution_time"}

func runDemo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("demo", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	rec := catalog.Record{
		"toolname":       "mytool",
		"arguments":      "1 2 3",
		"date":           "05/28/2024",
		"user":           "me",
		"execution_time": "10:52:11",
	}
	err = a.inTx(ctx, func(tx *sql.Tx) error {
		if err := a.catalog.CreateTableIfAbsent(ctx, tx, "tools", demoColumns); err != nil {
			return err
		}
		return a.catalog.AddRow(ctx, tx, "tools", rec, catalog.Relaxed)
	})
	if err != nil {
		return err
	}
	a.publish(ctx, cdc.NewInsert("tools", rec))

	res, err := a.catalog.ReadTable(ctx, a.db, "tools")
	if err != nil {
		return err
	}
	return export.WriteText(stdout, res)
}
