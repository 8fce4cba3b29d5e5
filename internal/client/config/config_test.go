package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, common.DefaultGraphQLEndpoint, c.GraphQLEndpoint)
	assert.Equal(t, "portal.db", c.DatabasePath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.CacheFreshness)
	assert.True(t, c.ClampPages)
	assert.Equal(t, "slog", c.LogBackend)
	assert.False(t, c.TelemetryEnabled)
}

func TestLoad_UsesDefaultsWithoutSources(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err, "Load must succeed with no sources")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgFile := writeFile(t, dir, "portal.json", `{
		"graphql_endpoint": "http://file.example/graphql",
		"database_path": "file.db",
		"log_level": "debug"
	}`)
	envFile := writeFile(t, dir, "portal.env", "PORTAL_DATABASE_PATH=env.db\nPORTAL_LOG_LEVEL=info\n")

	unsetEnv(t, "PORTAL_DATABASE_PATH", "PORTAL_LOG_LEVEL")

	cfg, err := Load([]string{"-c", cfgFile, "-env", envFile, "-l", "error"})
	require.NoError(t, err)

	assert.Equal(t, "http://file.example/graphql", cfg.GraphQLEndpoint, "file only")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env over file")
	assert.Equal(t, "error", cfg.LogLevel, "flag over env")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	cfg, err := Load([]string{"-c", "/does/not/exist.json"})
	require.Error(t, err)
	assert.Nil(t, cfg)
}
