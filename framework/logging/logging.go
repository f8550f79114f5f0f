// Package logging builds the application's zap logger from config.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/config"
)

// New creates a logger for cfg. Production environments get zap's
// production preset, everything else the development one. LOG_LEVEL and
// LOG_FORMAT override the preset's level and encoding.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	switch cfg.App.Env {
	case "production":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", cfg.Log.Level, err)
	}
	zc.Level = level

	if cfg.Log.Format != "" {
		zc.Encoding = cfg.Log.Format
	}

	logger, err := zc.Build(zap.Fields(
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	))
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}
