package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a scratch directory so the developer's own
// ~/.bptrack and .env never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{
		"BPTRACK_CONFIG", "BPTRACK_STORAGE", "BPTRACK_DB_PATH", "BPTRACK_VALKEY_ADDR",
		"BPTRACK_KEY_PREFIX", "LOG_LEVEL", "BPTRACK_LOG_FILE", "PIXOO_IP", "PIXOO_BRIGHTNESS",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, ".bptrack", "bptrack.db"), cfg.Storage.Path)
	assert.Equal(t, "bptrack", cfg.Storage.KeyPrefix)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 80, cfg.Pixoo.Brightness)
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
storage:
  driver: valkey
  valkeyAddr: localhost:6379
  keyPrefix: home
log:
  level: debug
pixoo:
  ip: 192.168.1.50
  brightness: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("BPTRACK_CONFIG", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverValkey, cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.Storage.ValkeyAddr)
	assert.Equal(t, "home", cfg.Storage.KeyPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "192.168.1.50", cfg.Pixoo.IP)
	assert.Equal(t, 40, cfg.Pixoo.Brightness)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".bptrack"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bptrack", "config.yaml"),
		[]byte("storage:\n  driver: sqlite\n  path: /tmp/from-file.db\n"), 0o600))

	t.Setenv("BPTRACK_STORAGE", "MEMORY")
	t.Setenv("PIXOO_BRIGHTNESS", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/from-file.db", cfg.Storage.Path)
	assert.Equal(t, 80, cfg.Pixoo.Brightness)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PIXOO_IP=10.0.0.7\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PIXOO_IP") })
	os.Unsetenv("PIXOO_IP")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", cfg.Pixoo.IP)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o600))
	t.Setenv("BPTRACK_CONFIG", path)

	_, err := Load()
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"memory", func(c *Config) { c.Storage.Driver = DriverMemory; c.Storage.Path = "" }, ""},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }, "unknown storage driver"},
		{"sqlite without path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"valkey without addr", func(c *Config) { c.Storage.Driver = DriverValkey }, "storage.valkeyAddr"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "unknown log level"},
		{"brightness", func(c *Config) { c.Pixoo.Brightness = 101 }, "pixoo.brightness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
