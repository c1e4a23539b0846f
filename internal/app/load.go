package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/loader"
	"github.com/specialistvlad/protocatalog/internal/locale"
	"github.com/specialistvlad/protocatalog/internal/modlist"
	"github.com/specialistvlad/protocatalog/internal/script/hclscript"
)

// Mods discovers the enabled mods below the configured path and returns
// them in load order.
func (a *App) Mods(ctx context.Context) ([]*modlist.Mod, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering mods...", "mods_path", a.config.ModsPath)

	found, err := modlist.Discover(ctx, a.config.ModsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to discover mods: %w", err)
	}
	ordered, err := modlist.LoadOrder(found)
	if err != nil {
		return nil, fmt.Errorf("failed to order mods: %w", err)
	}
	logger.Debug("Mods ordered.", "count", len(ordered))
	return ordered, nil
}

// Load runs the data stage over every enabled mod and returns the frozen
// table with its report. Data problems are in the report, not the error.
func (a *App) Load(ctx context.Context) (*loader.Result, error) {
	ctx = a.Context(ctx)
	mods, err := a.Mods(ctx)
	if err != nil {
		return nil, err
	}

	opts := []loader.Option{
		loader.WithPolicy(a.policy),
		loader.WithLanguage(a.config.Language),
		loader.WithSettings(a.config.SettingValues()),
	}
	if a.config.LocalePath != "" {
		catalog, err := locale.Load(a.config.LocalePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load base locale: %w", err)
		}
		ctxlog.FromContext(ctx).Debug("Base locale loaded.", "path", a.config.LocalePath, "keys", catalog.Len())
		opts = append(opts, loader.WithLocale(catalog))
	}

	var engineOpts []convert.Option
	if a.config.WorkerCount > 0 {
		engineOpts = append(engineOpts, convert.WithWorkers(a.config.WorkerCount))
	}
	engine := convert.New(a.registry, engineOpts...)

	return loader.New(engine, hclscript.New(), opts...).Load(ctx, mods)
}
