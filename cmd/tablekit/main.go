package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tablekit error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 2 {
		printUsage(stdout)
		return nil
	}

	cmds := map[string]func(context.Context, []string, io.Writer, io.Writer) error{
		"tables":   runTables,
		"describe": runDescribe,
		"create":   runCreate,
		"insert":   runInsert,
		"read":     runRead,
		"check":    runCheck,
		"demo":     runDemo,
	}

	switch args[1] {
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		cmd, ok := cmds[args[1]]
		if !ok {
			return fmt.Errorf("unknown command: %s", args[1])
		}
		return cmd(ctx, args[2:], stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `tablekit - create, inspect, fill and read relational tables

Usage:
  tablekit <command> [--config <path>] [flags]

Commands:
  tables                                   List tables
  describe --table T                       Show column metadata
  create   [--table T --columns SPEC]      Create a table (or every configured table) if absent
  insert   --table T --record JSON [--mode strict|relaxed]
                                           Validate and insert one row
  read     --table T [--format text|csv|parquet] [--out FILE]
                                           Print or export a whole table
  check                                    Compare configured tables with the live schema
  demo                                     Create the tools table, add a row and print it
  help                                     Show this help message
`)
}
