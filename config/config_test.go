package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	chdir(t, t.TempDir())

	// Act
	cfg, err := LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "qrlogo.db", cfg.DatabaseURL)
	assert.Equal(t, "qrcode.png", cfg.DefaultFilename)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 10000, cfg.MaxImageEdge)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "qrlogo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\noutput_dir: /srv/codes\nmax_image_edge: 0\n"), 0o644))

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/codes", cfg.OutputDir)
	assert.Equal(t, 0, cfg.MaxImageEdge)
	assert.Equal(t, "qrlogo.db", cfg.DatabaseURL)
}

func TestLoadConfig_MissingYAMLFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number\n"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "qrlogo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\nlog_level: INFO\n"), 0o644))
	t.Setenv("QRLOGO_PORT", "7000")
	t.Setenv("QRLOGO_LOG_LEVEL", "DEBUG")
	t.Setenv("QRLOGO_CACHE_SIZE", "0")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 0, cfg.CacheSize)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("QRLOGO_OUTPUT_DIR=/from/dotenv\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("QRLOGO_OUTPUT_DIR") })

	// Act
	cfg, err := LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.OutputDir)
}

func TestLoadConfig_EnvironmentIndependentOfLogLevel(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		logLevel       string
		wantProduction bool
	}{
		{"info level stays development", "", "INFO", false},
		{"production at debug level", "production", "DEBUG", true},
		{"production at info level", "production", "INFO", true},
		{"development at error level", "development", "ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			chdir(t, t.TempDir())
			if tt.environment != "" {
				t.Setenv("QRLOGO_ENVIRONMENT", tt.environment)
			}
			t.Setenv("QRLOGO_LOG_LEVEL", tt.logLevel)

			// Act
			cfg, err := LoadConfig("")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantProduction, cfg.IsProduction())
			assert.Equal(t, tt.logLevel, cfg.LogLevel)
		})
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "QRLOGO_PORT", "eighty"},
		{"port out of range", "QRLOGO_PORT", "70000"},
		{"negative cache size", "QRLOGO_CACHE_SIZE", "-1"},
		{"negative max edge", "QRLOGO_MAX_IMAGE_EDGE", "-10"},
		{"max edge above raster cap", "QRLOGO_MAX_IMAGE_EDGE", "20000"},
		{"unknown environment", "QRLOGO_ENVIRONMENT", "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig("")

			assert.Error(t, err)
		})
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	cfg := Config{OutputDir: dir}

	err := cfg.EnsureOutputDir()

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
