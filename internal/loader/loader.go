package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/locale"
	"github.com/specialistvlad/protocatalog/internal/modlist"
	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/script"
	"github.com/specialistvlad/protocatalog/internal/validate"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Result is the outcome of a load.
type Result struct {
	// Table is frozen.
	Table  *datatable.Table
	Report *Report
	// Raw is the final shared raw table, kind -> name -> fields.
	Raw *value.Table
	// Locale merges the base catalog with every mod's locale file.
	Locale *locale.Catalog
}

// Loader runs the data stage.
type Loader struct {
	engine   *convert.Engine
	executor script.Executor
	source   script.Source
	policy   datatable.OverridePolicy
	locale   *locale.Catalog
	language string
	settings map[string]value.Value
}

// Option configures a Loader.
type Option func(*Loader)

// WithPolicy sets the override policy of the table being built.
func WithPolicy(p datatable.OverridePolicy) Option {
	return func(l *Loader) { l.policy = p }
}

// WithLocale sets the catalog mods' locale files are merged into.
func WithLocale(c *locale.Catalog) Option {
	return func(l *Loader) { l.locale = c }
}

// WithLanguage makes the loader read <mod>/locale/<language>.yaml from every mod.
func WithLanguage(language string) Option {
	return func(l *Loader) { l.language = language }
}

// WithSettings exposes startup setting values to scripts.
func WithSettings(settings map[string]value.Value) Option {
	return func(l *Loader) { l.settings = settings }
}

// WithSource replaces the default script source.
func WithSource(s script.Source) Option {
	return func(l *Loader) { l.source = s }
}

// New creates a Loader. Scripts are read as <mod dir>/<phase>.hcl unless
// WithSource says otherwise.
func New(engine *convert.Engine, executor script.Executor, opts ...Option) *Loader {
	l := &Loader{
		engine:   engine,
		executor: executor,
		source:   script.FileSource{Extension: ".hcl"},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs every phase for every mod, in the given order. The returned
// error is reserved for cancellation and unusable input; data problems are
// collected in the Report.
func (l *Loader) Load(ctx context.Context, mods []*modlist.Mod) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Loading mods.", "count", len(mods))

	s := &session{
		Loader:  l,
		table:   datatable.New(datatable.WithOverridePolicy(l.policy)),
		raw:     value.NewTable(),
		report:  &Report{},
		failed:  make(map[string]bool),
		mods:    make(map[string]string, len(mods)),
		catalog: locale.New(),
	}
	if l.locale != nil {
		s.catalog.Merge(l.locale)
	}
	for _, m := range mods {
		s.mods[m.Name] = m.Version.String()
		if err := s.loadLocale(ctx, m); err != nil {
			return nil, err
		}
	}

	for _, ph := range phase.All() {
		for _, m := range mods {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load interrupted: %w", err)
			}
			if s.failed[m.Name] {
				continue
			}
			if err := s.run(ctxlog.With(ctx, "mod", m.Name, "phase", string(ph)), m, ph); err != nil {
				return nil, err
			}
		}
	}

	s.table.Freeze()
	broken, err := validate.New(l.engine.Registry()).ValidateAll(ctx, s.table)
	if err != nil {
		return nil, err
	}
	s.report.BrokenReferences = broken

	logger.Info("Mods loaded.",
		"prototypes", s.table.Len(),
		"overrides", len(s.report.Overrides),
		"problems", s.report.Problems(),
		"failed_mods", len(s.report.FailedMods),
	)
	return &Result{Table: s.table, Report: s.report, Raw: s.raw, Locale: s.catalog}, nil
}

// session is the state of one Load call.
type session struct {
	*Loader
	table  *datatable.Table
	raw    *value.Table
	report *Report
	failed map[string]bool
	mods   map[string]string
	// catalog is the base locale merged with every mod's locale file.
	catalog *locale.Catalog
}

func (s *session) loadLocale(ctx context.Context, m *modlist.Mod) error {
	if s.language == "" {
		return nil
	}
	dir := filepath.Join(m.Dir, "locale")
	for _, path := range []string{filepath.Join(dir, s.language+".yaml"), filepath.Join(dir, s.language)} {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		c, err := locale.Load(path)
		if err != nil {
			return fmt.Errorf("mod %q: %w", m.Name, err)
		}
		ctxlog.FromContext(ctx).Debug("Loaded mod locale.", "mod", m.Name, "path", path, "entries", c.Len())
		s.catalog.Merge(c)
	}
	return nil
}

// run processes one mod for one phase. Only cancellation is returned as an
// error; everything else goes to the report.
func (s *session) run(ctx context.Context, m *modlist.Mod, ph phase.Phase) error {
	logger := ctxlog.FromContext(ctx)

	src, err := s.source.Open(m.Name, m.Dir, ph)
	if err != nil {
		s.fail(ctx, m.Name, &script.ExecutionError{Mod: m.Name, Phase: ph, Message: err.Error()})
		return nil
	}
	if src == nil {
		return nil
	}

	tree, err := s.executor.Execute(ctx, src, &script.Environment{
		Mod:      m.Name,
		Version:  m.Version.String(),
		Phase:    ph,
		Mods:     s.mods,
		Settings: s.settings,
		Raw:      s.raw,
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("load interrupted: %w", ctx.Err())
		}
		s.fail(ctx, m.Name, err)
		return nil
	}
	mergeRaw(s.raw, tree)

	s.table.SetOrigin(m.Name, ph)
	res, err := s.engine.ConvertTree(ctx, &convert.Context{Mod: m.Name, Phase: ph, Table: s.table, Locale: s.catalog}, tree)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("load interrupted: %w", ctx.Err())
		}
		logger.Warn("Script result rejected.", "error", err)
		s.report.TreeErrors = append(s.report.TreeErrors, err)
		return nil
	}
	for _, cerr := range res.Errors {
		logger.Warn("Prototype conversion failed.", "error", cerr)
	}
	s.report.ConversionErrors = append(s.report.ConversionErrors, res.Errors...)

	for _, p := range res.Prototypes {
		before, existed := s.table.Entry(p.Kind(), p.Name())
		prev, err := s.table.Insert(p.Kind(), p.Name(), p)
		if err != nil {
			logger.Warn("Prototype rejected by table.", "error", err)
			s.report.InsertErrors = append(s.report.InsertErrors, err)
			continue
		}
		if prev != nil && existed {
			logger.Debug("Prototype overridden.", "kind", p.Kind(), "name", p.Name(), "previous_mod", before.Mod)
			s.report.Overrides = append(s.report.Overrides, Override{
				Kind: p.Kind(), Name: p.Name(), PreviousMod: before.Mod, Mod: m.Name, Phase: ph,
			})
		}
	}

	logger.Debug("Mod phase processed.", "converted", len(res.Prototypes), "failed", len(res.Errors))
	return nil
}

func (s *session) fail(ctx context.Context, mod string, err error) {
	ctxlog.FromContext(ctx).Error("Mod script failed, skipping its remaining phases.", "error", err)
	s.report.ScriptErrors = append(s.report.ScriptErrors, err)
	s.report.FailedMods = append(s.report.FailedMods, mod)
	s.failed[mod] = true
}

// mergeRaw assigns every definition of tree into raw.
func mergeRaw(raw *value.Table, tree value.Value) {
	kinds, ok := tree.AsTable()
	if !ok {
		return
	}
	for _, ke := range kinds.Entries() {
		names, ok := ke.Value.AsTable()
		if !ok {
			continue
		}
		var dst *value.Table
		if v, ok := raw.Get(ke.Key); ok {
			dst, _ = v.AsTable()
		}
		if dst == nil {
			dst = value.NewTable()
			raw.Put(ke.Key, value.TableOf(dst))
		}
		for _, ne := range names.Entries() {
			dst.Put(ne.Key, ne.Value)
		}
	}
}
