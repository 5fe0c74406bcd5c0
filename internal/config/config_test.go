package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads, restoring them after the test.
// t.Setenv records the old value; os.Unsetenv then removes it for this test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_PATH", "ENV", "PORT", "SHUTDOWN_TIMEOUT", "STORE_DRIVER", "DATA_FILE", "DB_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// Run from an empty dir so a developer's .env cannot leak in.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":5050", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DriverJSON, cfg.Store.Driver)
	assert.Equal(t, "Database.json", cfg.Store.DataFile)
	assert.Equal(t, "data/alumni.db", cfg.Store.DBPath)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/alumni.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/alumni.db", cfg.Store.DBPath)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	for _, raw := range []string{"abc", "0", "70000", "-1"} {
		t.Run(raw, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", raw)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, DefaultPort, cfg.Port)
			require.Len(t, cfg.Warnings, 1)
			assert.Contains(t, cfg.Warnings[0], raw)
		})
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestLoad_FromYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "env: staging\nport: \"6060\"\nstore:\n  driver: json\n  data_file: alumni.json\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 6060, cfg.Port)
	assert.Equal(t, "alumni.json", cfg.Store.DataFile)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DATA_FILE=from-dotenv.json\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DATA_FILE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.Store.DataFile)
}

func TestLoad_MalformedDotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("BAD-KEY=1\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestLoad_DotEnvIsADirectory(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Mkdir(".env", 0755))

	_, err := Load()
	assert.Error(t, err)
}
