package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 90*time.Second, cfg.RestPeriod())
	assert.Equal(t, 2*time.Second, cfg.TransitionDelay())
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
connection_string = "~/gym/data.db"

[session]
rest_seconds = 120
checkpoint = "db"

[display]
timezone = "America/Sao_Paulo"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "gym", "data.db"), cfg.DB.ConnectionString)
	assert.Equal(t, 120, cfg.Session.RestSeconds)
	assert.Equal(t, 2, cfg.Session.TransitionSeconds, "unset keys keep defaults")
	assert.Equal(t, CheckpointDB, cfg.Session.Checkpoint)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"checkpoint": "[session]\ncheckpoint = \"cloud\"\n",
		"rest":       "[session]\nrest_seconds = 0\n",
		"timezone":   "[display]\ntimezone = \"Mars/Olympus\"\n",
		"syntax":     "[session\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TURSO_DATABASE_URL", "libsql://gym-me.turso.io")
	t.Setenv("TURSO_AUTH_TOKEN", "s3cret")
	t.Setenv("DEV_MODE", "")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "libsql://gym-me.turso.io?authToken=s3cret", cfg.DSN())

	t.Setenv("DEV_MODE", "true")
	cfg.ApplyEnv()
	assert.Equal(t, "file:./gymtrack.db", cfg.DSN())
}

func TestDSNLeavesLocalPathsAlone(t *testing.T) {
	cfg := Default()
	cfg.DB.AuthToken = "ignored"
	assert.Equal(t, cfg.DB.ConnectionString, cfg.DSN())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Session.RestSeconds = 75
	cfg.Display.Timezone = "America/Sao_Paulo"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
