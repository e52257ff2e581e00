// Package config reads process settings from the environment and an
// optional .env file. Flags given on the command line win over both.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string `env:"CALAI_DB"`
	BackupDir string `env:"CALAI_BACKUP_DIR"`
	Verbose   bool   `env:"CALAI_VERBOSE"`
	TimeZone  string `env:"CALAI_TZ"`
}

// Load merges the given .env files (".env" when none are named) into the
// process environment and parses Config from it. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves TimeZone, defaulting to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid CALAI_TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
