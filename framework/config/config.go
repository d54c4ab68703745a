package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingScanPackage is returned by Validate when no scan root is set.
var ErrMissingScanPackage = errors.New("config: SCAN_PACKAGE is not set")

// Config is the central typed configuration struct.
type Config struct {
	App AppConfig
	Web WebConfig

	// Properties holds every key read from the env files, whether or not the
	// framework consumes it.
	Properties map[string]string
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type WebConfig struct {
	ScanPackage string // import path whose classes become beans
	ContextPath string // prefix the application is mounted under
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoMVC"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Web: WebConfig{
			ScanPackage: strings.TrimSpace(env("SCAN_PACKAGE", "")),
			ContextPath: env("CONTEXT_PATH", ""),
		},
		Properties: read(files),
	}
}

// Property returns a key from the env files, then the environment, then
// fallback.
func (c *Config) Property(key, fallback string) string {
	if v, ok := c.Properties[key]; ok && v != "" {
		return v
	}
	return env(key, fallback)
}

// Validate reports configuration the framework cannot start without.
func (c *Config) Validate() error {
	if c.Web.ScanPackage == "" {
		return ErrMissingScanPackage
	}
	return nil
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

// read merges the files that exist; earlier files win, as with godotenv.Load.
func read(files []string) map[string]string {
	props := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range m {
			if _, ok := props[k]; !ok {
				props[k] = v
			}
		}
	}
	return props
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
