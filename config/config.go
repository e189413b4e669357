// Package config loads application settings from defaults, an optional .env file,
// an optional YAML file and QRLOGO_ environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prasetyowira/qrlogo/constant"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	DatabaseURL     string `yaml:"database_url"`
	OutputDir       string `yaml:"output_dir"`
	DefaultFilename string `yaml:"default_filename"`
	CacheSize       int    `yaml:"cache_size"`
	LogLevel        string `yaml:"log_level"`
	// Environment selects the log format: "production" writes sampled JSON to
	// stdout, "development" writes console lines to stderr. It is independent of LogLevel.
	Environment string `yaml:"environment"`
	// MaxImageEdge bounds generated images in pixels. 0 leaves only the
	// constant.MaxRasterEdge cap.
	MaxImageEdge int `yaml:"max_image_edge"`
}

func defaults() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            8080,
		DatabaseURL:     "qrlogo.db",
		OutputDir:       ".",
		DefaultFilename: constant.DefaultFilename,
		CacheSize:       32,
		LogLevel:        "INFO",
		Environment:     constant.EnvDevelopment,
		MaxImageEdge:    10000,
	}
}

// LoadConfig builds the configuration. An empty path skips the YAML file, and a
// missing .env or YAML file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Addr returns the listen address of the form UI
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// IsProduction reports whether logs use the production encoder
func (c Config) IsProduction() bool {
	return c.Environment == constant.EnvProduction
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	if c.Environment != constant.EnvDevelopment && c.Environment != constant.EnvProduction {
		return fmt.Errorf("invalid environment %q, want %s or %s", c.Environment, constant.EnvDevelopment, constant.EnvProduction)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache size %d", c.CacheSize)
	}
	if c.MaxImageEdge < 0 || c.MaxImageEdge > constant.MaxRasterEdge {
		return fmt.Errorf("invalid max image edge %d, allowed 0-%d", c.MaxImageEdge, constant.MaxRasterEdge)
	}
	if c.DefaultFilename == "" {
		return errors.New("default filename cannot be empty")
	}
	return nil
}

// EnsureOutputDir creates OutputDir if it does not already exist
func (c Config) EnsureOutputDir() error {
	if c.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", c.OutputDir, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.DefaultFilename = getEnv("DEFAULT_FILENAME", cfg.DefaultFilename)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)

	var err error
	if cfg.Port, err = getEnvInt("PORT", cfg.Port); err != nil {
		return err
	}
	if cfg.CacheSize, err = getEnvInt("CACHE_SIZE", cfg.CacheSize); err != nil {
		return err
	}
	if cfg.MaxImageEdge, err = getEnvInt("MAX_IMAGE_EDGE", cfg.MaxImageEdge); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(constant.EnvPrefix + key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: %w", constant.EnvPrefix, key, err)
	}
	return v, nil
}
