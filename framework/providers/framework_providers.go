package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/config"
	"github.com/km-arc/go-gears/framework/container"
	gohttp "github.com/km-arc/go-gears/framework/http"
	"github.com/km-arc/go-gears/framework/logging"
	"github.com/km-arc/go-gears/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound keys:
//   - "config"   → *config.Config (singleton)
//   - "app.name" → string (singleton, read from "config")
//   - "app.env"  → string (singleton, read from "config")
//
// When Config is nil the configuration is loaded from EnvFiles and validated
// on first read.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	err := c.Set("config", container.Computable(func(*container.Container) (any, error) {
		if p.Config != nil {
			return p.Config, nil
		}
		cfg := config.Load(p.EnvFiles...)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}))
	if err != nil {
		return err
	}

	if err := c.Set("app.name", fromConfig(func(cfg *config.Config) any { return cfg.App.Name })); err != nil {
		return err
	}
	return c.Set("app.env", fromConfig(func(cfg *config.Config) any { return cfg.App.Env }))
}

func fromConfig(pick func(*config.Config) any) container.Computable {
	return func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return pick(cfg), nil
	}
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound keys:
//   - "logger" → *zap.Logger (singleton)
//
// When Logger is nil one is built from "config".
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(c *container.Container) error {
	return c.Set("logger", container.Computable(func(c *container.Container) (any, error) {
		if p.Logger != nil {
			return p.Logger, nil
		}
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg)
	}))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router.
//
// Bound keys:
//   - "router" → *routing.Router (singleton, logs through "logger")
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c *container.Container) error {
	return c.Set("router", container.Computable(func(c *container.Container) (any, error) {
		logger, err := container.Resolve[*zap.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	}))
}

// ── InspectorServiceProvider ──────────────────────────────────────────────────

// InspectorServiceProvider mounts the read-only binding inspector on the
// router at Inspect.Prefix when Inspect.Enabled is set. It binds nothing.
type InspectorServiceProvider struct {
	container.BaseProvider
}

func (p *InspectorServiceProvider) Register(*container.Container) error { return nil }

func (p *InspectorServiceProvider) Boot(c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c, "config")
	if err != nil {
		return err
	}
	if !cfg.Inspect.Enabled {
		return nil
	}
	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}
	router.Prefix(cfg.Inspect.Prefix, gohttp.NewInspector(c).Mount)
	return nil
}
