package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "pgnav", cmd.Use)
	assert.Equal(t, Version, cmd.Version)

	// Global persistent flags
	flags := []string{"config", "host", "port", "database", "user", "password", "sslmode", "schema", "verbose", "output"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	// Subcommands
	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"version", "tree", "search", "complete", "ddl", "repl"} {
		assert.True(t, subs[want], "subcommand %q should exist", want)
	}
}
