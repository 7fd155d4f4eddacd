// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Backend names accepted in the "backend" key.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the roster file (text backend) or the SQLite .db
	// file (sqlite backend).
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// Backend selects the persistence implementation: "file" or "sqlite".
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`

	// Generator is embedded (not a pointer) so its fields are accessible
	// directly on Config.
	Generator `yaml:"generator"`
}

// Generator holds settings for the external text generation helper.
// Nested under generator: in the YAML file.
type Generator struct {
	// Command is the helper program. Empty disables insights: every
	// request then fails with a clear "unavailable" error.
	Command string `yaml:"command" env:"GENERATOR_COMMAND"`

	// Args are passed before the prompt.
	Args []string `yaml:"args" env:"GENERATOR_ARGS" env-separator:" "`

	// Timeout bounds one helper run.
	Timeout time.Duration `yaml:"timeout" env:"GENERATOR_TIMEOUT" env-default:"30s"`
}

// Load reads the YAML file at path, applies environment overrides and
// checks the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// and validates env-required:"true" constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	switch cfg.Backend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown backend %q: want %q or %q", cfg.Backend, BackendFile, BackendSQLite)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to fatal on failure. If this function returns, the
// config is valid.
//
// Only the --config flag is parsed here; flag.Args() afterwards holds
// the command to run.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	flags := flag.String("config", "", "Path to the configuration YAML file")
	flag.Parse()
	if configPath == "" {
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}
