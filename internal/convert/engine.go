package convert

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Engine converts value tree nodes into typed prototypes. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	reg     *registry.Registry
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds how many prototypes of one tree convert in parallel.
// Values below one mean one.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// New creates an engine for the kinds of reg.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{reg: reg, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine converts against.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Convert turns one prototype definition into an instance of kind. The
// returned error is a *ConversionError, *StructuralError or
// *UnknownPrototypeTypeError; on error no instance is returned.
func (e *Engine) Convert(ctx context.Context, cc *Context, kind, name string, node value.Value) (prototype.Prototype, error) {
	if cc == nil {
		cc = &Context{}
	}
	info, err := e.reg.Lookup(kind)
	if err != nil {
		return nil, &UnknownPrototypeTypeError{Mod: cc.Mod, Kind: kind}
	}
	if info.Abstract {
		return nil, &UnknownPrototypeTypeError{Mod: cc.Mod, Kind: kind, Abstract: true}
	}

	inst, err := e.convert(cc, info, name, node)
	if err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) {
			ce.Mod, ce.Kind, ce.Name = cc.Mod, info.Name, name
		}
		return nil, err
	}
	return inst, nil
}

func (e *Engine) convert(cc *Context, info *registry.KindInfo, name string, node value.Value) (prototype.Prototype, error) {
	tbl, ok := node.AsTable()
	if !ok {
		return nil, mismatch(fieldpath.Root, "table", node)
	}
	if err := checkIdentity(cc, tbl, info.Name, name); err != nil {
		return nil, err
	}
	if key, dup := tbl.FirstDuplicate(); dup {
		return nil, &ConversionError{Reason: DuplicateKeyInTable, Path: fieldpath.Root, Key: key.String()}
	}

	inst, err := e.reg.New(info.Name, name)
	if err != nil {
		return nil, err
	}
	root := reflect.ValueOf(inst).Elem()
	d := &decoder{cc: cc}

	for _, bf := range e.reg.Fields(info.Name) {
		if err := d.field(bf.FieldDescriptor, root.FieldByIndex(bf.Index), tbl, fieldpath.Root); err != nil {
			return nil, err
		}
	}
	for _, layer := range info.Layers {
		if err := d.hook(root.FieldByIndex(layer.Index).Addr(), fieldpath.Root); err != nil {
			return nil, err
		}
	}
	if pc, ok := inst.(PrototypeChecker); ok {
		if err := pc.CheckPrototype(cc); err != nil {
			return nil, locate(err, fieldpath.Root)
		}
	}
	return inst, nil
}

// checkIdentity verifies the optional `type` and `name` fields agree with the
// keys the definition is stored under.
func checkIdentity(cc *Context, tbl *value.Table, kind prototype.Kind, name string) error {
	for _, id := range []struct{ field, want string }{{"type", string(kind)}, {"name", name}} {
		v, ok := tbl.Field(id.field)
		if !ok || v.IsNil() {
			continue
		}
		if got, isStr := v.AsString(); !isStr || got != id.want {
			return &StructuralError{
				Mod:     cc.Mod,
				Path:    fmt.Sprintf("%s.%s.%s", kind, name, id.field),
				Message: fmt.Sprintf("expected %q, got %s", id.want, v.Describe()),
			}
		}
	}
	return nil
}
