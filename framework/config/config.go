package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-gears/framework/validation"
)

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Inspect InspectConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// InspectConfig controls the read-only container inspector.
type InspectConfig struct {
	Enabled bool
	Prefix  string
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
			Name:  env("APP_NAME", "Gears"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "console"),
		},
		Inspect: InspectConfig{
			Enabled: envBool("INSPECT_ENABLED", false),
			Prefix:  env("INSPECT_PREFIX", "/_container"),
		},
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	v := validation.Make(map[string]string{
		"APP_NAME":       c.App.Name,
		"APP_ENV":        c.App.Env,
		"APP_PORT":       c.App.Port,
		"LOG_LEVEL":      c.Log.Level,
		"LOG_FORMAT":     c.Log.Format,
		"INSPECT_PREFIX": c.Inspect.Prefix,
	}, validation.Rules{
		"APP_NAME":       "required",
		"APP_ENV":        "required|in:local,production,testing",
		"APP_PORT":       "required|integer|between:1,65535",
		"LOG_LEVEL":      "required|in:debug,info,warn,error",
		"LOG_FORMAT":     "required|in:console,json",
		"INSPECT_PREFIX": "required|regex:^/[A-Za-z0-9_/-]*$",
	})
	if v.Passes() {
		return nil
	}

	bag := v.Errors().Bag
	fields := make([]string, 0, len(bag))
	for f := range bag {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, bag[f]...)
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, " "))
}

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid configuration")

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
