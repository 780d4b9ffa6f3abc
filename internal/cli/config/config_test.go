package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	withWorkDir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultSSLMode, cfg.SSLMode)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.Database)
	assert.Empty(t, cfg.Schemas)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	withWorkDir(t, dir)

	content := `host: db.internal
port: 6432
database: app
user: svc
schemas:
  - public
  - billing
output: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgnav.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6432, cfg.Port)
	assert.Equal(t, "app", cfg.Database)
	assert.Equal(t, []string{"public", "billing"}, cfg.Schemas)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "pgnav.yaml", GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	withWorkDir(t, dir)

	content := "database: app\nhost: filehost\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgnav.yaml"), []byte(content), 0o600))

	t.Setenv("PGNAV_HOST", "envhost")
	t.Setenv("PGNAV_SCHEMAS", "public,audit")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "app", cfg.Database, "file values survive when env does not override")
	assert.Equal(t, []string{"public", "audit"}, cfg.Schemas)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	withWorkDir(t, t.TempDir())

	t.Setenv("PGNAV_HOST", "envhost")
	t.Setenv("PGNAV_DATABASE", "envdb")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.String("database", "", "")
	flags.StringSlice("schema", nil, "")
	require.NoError(t, flags.Parse([]string{"--host", "flaghost", "--schema", "public", "--schema", "billing"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, "envdb", cfg.Database, "unchanged flags do not override env")
	assert.Equal(t, []string{"public", "billing"}, cfg.Schemas, "--schema flag maps to schemas key")
}

func TestLoadConfigExpandsPassword(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	withWorkDir(t, dir)

	content := "database: app\npassword: ${PGNAV_TEST_SECRET}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pgnav.yaml"), []byte(content), 0o600))
	t.Setenv("PGNAV_TEST_SECRET", "hunter2")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Password)
}

func TestConfigParams(t *testing.T) {
	cfg := Config{
		Host: "h", Port: 15432, Database: "d", User: "u",
		Password: "p", SSLMode: "require", Schemas: []string{"public"},
	}
	p := cfg.Params()

	assert.Equal(t, "h", p.Host)
	assert.Equal(t, 15432, p.Port)
	assert.Equal(t, "d", p.Database)
	assert.Equal(t, []string{"public"}, p.Schemas)
}

// withWorkDir runs the rest of the test from dir so config file discovery
// does not pick up files from the repo.
func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
