// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A local '.env' file, when present, is loaded first with 'godotenv' so
developers do not have to export every variable by hand.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Values already present in the process environment always win over the file.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/taibuivan/locallibrary/internal/platform/i18n"
)

// # Configuration Schema

// Config holds all runtime configuration for the LocalLibrary API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// RS256 key pair for access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// AllowedOriginSuffix is the host suffix trusted by CORS outside development.
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:".locallibrary.app"`

	// DefaultLocale is used when Accept-Language matches nothing we support.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// # Configuration Loading

// Load reads an optional .env file and parses the environment into a [Config].
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	if err := loadFiles(files); err != nil {
		return nil, err
	}
	return parse[Config]()
}

// Database holds the subset of settings needed by offline tooling
// (migrations, account administration).
type Database struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// LoadDatabase is [Load] restricted to the [Database] settings.
func LoadDatabase(files ...string) (*Database, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := loadFiles(files); err != nil {
		return nil, err
	}
	return parse[Database]()
}

func loadFiles(files []string) error {
	// Missing files are fine; a malformed one is not.
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", file, err)
		}
	}
	return nil
}

func parse[T any]() (*T, error) {
	cfg := new(T)

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginAllowed reports whether a browser origin may call the API.
func (c *Config) OriginAllowed(origin string) bool {
	if c.AllowedOriginSuffix == "" {
		return false
	}
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	return strings.HasSuffix(host, c.AllowedOriginSuffix) || "."+host == c.AllowedOriginSuffix
}

// Locale returns the configured fallback language.
func (c *Config) Locale() language.Tag {
	return i18n.Parse(c.DefaultLocale)
}
