package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/policy"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	policy   *policy.Policy
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Results are written to outW and log records to logW. An unreadable or
// invalid policy file is returned as an error; registry defects panic.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.NewBuilder().Use(modules...).MustBuild()
	logger.Debug("All Go modules registered.", "modules", len(modules), "kinds", len(reg.Kinds()))

	pol := policy.Default()
	if cfg.PolicyPath != "" {
		var err error
		pol, err = policy.Load(cfg.PolicyPath, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to load override policy: %w", err)
		}
		logger.Debug("Override policy loaded.", "path", cfg.PolicyPath)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		policy:   pol,
	}, nil
}

// Registry returns the application's type registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Context attaches the application's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
