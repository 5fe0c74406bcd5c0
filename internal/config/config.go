// Package config loads the service configuration.
//
// SOURCES, IN ORDER:
//  1. A .env file in the working directory, if present (godotenv). Values
//     already set in the real environment win over the file. A missing
//     file is fine; an unreadable or malformed one is an error.
//  2. A YAML file named by CONFIG_PATH, if set (cleanenv.ReadConfig). Env
//     vars still override individual keys.
//  3. Otherwise the environment alone (cleanenv.ReadEnv), with env-default
//     tags filling the gaps.
//
// The result is checked with go-playground/validator. PORT is forgiving: an
// unparsable or out-of-range value falls back to DefaultPort with a warning
// instead of stopping the process.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DefaultPort = 5050

	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	// Env selects the log format: "dev" (text, debug), "staging" (JSON,
	// debug) or "prod" (JSON, info).
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// RawPort is PORT as written. Port is the parsed value.
	RawPort string `yaml:"port" env:"PORT" env-default:"5050"`
	Port    int    `yaml:"-" validate:"min=1,max=65535"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s" validate:"gt=0"`

	Store Store `yaml:"store"`

	// Warnings collects non-fatal problems found while loading, for the
	// caller to log once a logger exists.
	Warnings []string `yaml:"-"`
}

// Store selects and locates the collection backend.
type Store struct {
	Driver   string `yaml:"driver" env:"STORE_DRIVER" env-default:"json" validate:"oneof=json sqlite"`
	DataFile string `yaml:"data_file" env:"DATA_FILE" env-default:"Database.json" validate:"required"`
	DBPath   string `yaml:"db_path" env:"DB_PATH" env-default:"data/alumni.db" validate:"required"`
}

// Load reads the configuration from .env, CONFIG_PATH and the environment.
func Load() (*Config, error) {
	// .env is optional, but one that exists must parse.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finish derives Port from RawPort and validates the whole struct.
func (c *Config) finish() error {
	c.Port = DefaultPort
	if raw := strings.TrimSpace(c.RawPort); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= 65535 {
			c.Port = n
		} else {
			c.Warnings = append(c.Warnings,
				fmt.Sprintf("invalid PORT %q, using %d", c.RawPort, DefaultPort))
		}
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
