package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  dir: data
logging:
  level: debug
tables:
  - name: tools
    columns: [toolname, arguments, date, user, execution_time]
    mode: relaxed
  - name: prices
    columns: "id INTEGER PRIMARY KEY, amount DECIMAL(10,2)"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
	if cfg.Database.Path() != filepath.Join("data", DefaultFile) {
		t.Fatalf("unexpected database path %s", cfg.Database.Path())
	}
	if len(cfg.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(cfg.Tables))
	}
	spec, err := cfg.Tables[0].Spec()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(spec.Fragments(), []string{"toolname", "arguments", "date", "user", "execution_time"}) {
		t.Fatalf("unexpected tools columns %v", spec.Fragments())
	}
	spec, err = cfg.Tables[1].Spec()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(spec.Fragments(), []string{"id INTEGER PRIMARY KEY", "amount DECIMAL(10,2)"}) {
		t.Fatalf("unexpected prices columns %v", spec.Fragments())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver":   "database:\n  driver: oracle\n",
		"mysql no dsn":     "database:\n  driver: mysql\n",
		"bad level":        "logging:\n  level: loud\n",
		"topic missing":    "events:\n  brokers: [localhost:9092]\n",
		"unnamed table":    "tables:\n  - columns: a\n",
		"numeric columns":  "tables:\n  - name: t\n    columns: 5\n",
		"empty columns":    "tables:\n  - name: t\n    columns: ' , '\n",
		"bad mode":         "tables:\n  - name: t\n    columns: a\n    mode: lenient\n",
		"duplicate tables": "tables:\n  - name: t\n    columns: a\n  - name: t\n    columns: b\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Fatalf("expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Path() != filepath.Join("db", "example.db") {
		t.Fatalf("unexpected default path %s", cfg.Database.Path())
	}
	if cfg.Events.Enabled() {
		t.Fatalf("events must be disabled by default")
	}
}

func TestLoadConfig_Example(t *testing.T) {
	path := "../../examples/config.yaml"
	if _, err := os.Stat(path); err != nil {
		t.Skip("examples config not present")
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
	if len(cfg.Tables) != 1 || cfg.Tables[0].Name != "tools" {
		t.Fatalf("unexpected tables %+v", cfg.Tables)
	}
}
