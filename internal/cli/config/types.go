// Package config provides configuration management for the pgnav CLI.
//
// Settings come from a YAML file, PGNAV_ environment variables, and CLI
// flags, with flags taking the highest precedence.
package config

import (
	"github.com/leapstack-labs/pgnav/internal/introspect"
)

// Config holds all CLI configuration options.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
	// Schemas limits introspection to the named schemas. Empty means
	// every non-system schema.
	Schemas      []string `koanf:"schemas"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`
}

// Default configuration values.
const (
	DefaultHost    = "localhost"
	DefaultPort    = 5432
	DefaultSSLMode = "prefer"
	DefaultOutput  = "table"
)

// Params converts the connection settings into introspection parameters.
func (c *Config) Params() introspect.Params {
	return introspect.Params{
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		User:     c.User,
		Password: c.Password,
		SSLMode:  c.SSLMode,
		Schemas:  c.Schemas,
	}
}
