package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/tablekit/internal/catalog"
)

const (
	DefaultDir  = "db"
	DefaultFile = "example.db"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Events   EventsConfig   `yaml:"events"`
	Tables   []TableConfig  `yaml:"tables"`
}

// DatabaseConfig locates the catalog. SQLite uses Dir and File; MySQL uses
// DSN and an optional Schema.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
	File   string `yaml:"file"`
	DSN    string `yaml:"dsn"`
	Schema string `yaml:"schema"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	SeqURL string `yaml:"seqURL"`
}

type EventsConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// TableConfig declares a table the tool manages. Columns is either a
// comma-separated string or a list of column definitions.
type TableConfig struct {
	Name    string `yaml:"name"`
	Columns any    `yaml:"columns"`
	Mode    string `yaml:"mode"`
}

func (d DatabaseConfig) Path() string {
	return filepath.Join(d.Dir, d.File)
}

func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0 && e.Topic != ""
}

// Spec resolves Columns into a column spec.
func (t TableConfig) Spec() (catalog.ColumnSpec, error) {
	return catalog.ColumnSpecOf(t.Columns)
}

// Default returns the configuration used when no file is given: a SQLite
// database at db/example.db.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" {
		if c.Database.Dir == "" {
			c.Database.Dir = DefaultDir
		}
		if c.Database.File == "" {
			c.Database.File = DefaultFile
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
	case "mysql":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for mysql")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or mysql, got %q", c.Database.Driver)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return errors.New("events.topic is required when events.brokers is set")
	}

	seen := map[string]bool{}
	for _, table := range c.Tables {
		if table.Name == "" {
			return errors.New("table.name is required")
		}
		if seen[table.Name] {
			return fmt.Errorf("table %s is declared twice", table.Name)
		}
		seen[table.Name] = true
		spec, err := table.Spec()
		if err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
		if len(spec.Fragments()) == 0 {
			return fmt.Errorf("table %s must define columns", table.Name)
		}
		if table.Mode != "" {
			if _, err := catalog.ParseMode(table.Mode); err != nil {
				return fmt.Errorf("table %s: %w", table.Name, err)
			}
		}
	}
	return nil
}
