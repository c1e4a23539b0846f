package validate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

// ErrNotFrozen is returned when validation is attempted on a table that is
// still accepting inserts.
var ErrNotFrozen = errors.New("data table must be frozen before validation")

// BrokenReference is a weak reference whose target does not exist.
type BrokenReference struct {
	TargetKind prototype.Kind
	TargetName string
	FromKind   prototype.Kind
	FromName   string
	Path       fieldpath.Path
}

func (b BrokenReference) Error() string {
	return fmt.Sprintf("%s/%s: field %s references unknown %s %q",
		b.FromKind, b.FromName, b.Path, b.TargetKind, b.TargetName)
}

// Err folds broken references into a single error, nil when there are none.
func Err(refs []BrokenReference) error {
	var merr *multierror.Error
	for _, ref := range refs {
		merr = multierror.Append(merr, ref)
	}
	return merr.ErrorOrNil()
}

// Validator checks weak references against a frozen table.
type Validator struct {
	reg *registry.Registry
	// targets caches the concrete kinds able to satisfy a reference to a kind.
	targets map[prototype.Kind][]prototype.Kind
}

// New creates a Validator for prototypes described by reg.
func New(reg *registry.Registry) *Validator {
	v := &Validator{reg: reg, targets: make(map[prototype.Kind][]prototype.Kind)}
	for _, k := range reg.Kinds() {
		v.targets[k] = reg.ConcreteDescendants(k)
	}
	return v
}

// ValidateAll scans every stored prototype and returns every broken
// reference in table order. An empty result means full integrity. The
// error is reserved for misuse and cancellation; broken references are
// never returned through it.
func (v *Validator) ValidateAll(ctx context.Context, tbl *datatable.Table) ([]BrokenReference, error) {
	logger := ctxlog.FromContext(ctx)
	if !tbl.Frozen() {
		return nil, ErrNotFrozen
	}

	var broken []BrokenReference
	checked := 0
	for _, entry := range tbl.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("validation interrupted: %w", err)
		}
		s := scan{v: v, tbl: tbl, from: entry.Key}
		s.prototype(entry.Prototype)
		broken = append(broken, s.broken...)
		checked += s.checked
	}

	logger.Debug("Reference validation finished.", "prototypes", tbl.Len(), "references", checked, "broken", len(broken))
	return broken, nil
}

func (v *Validator) exists(tbl *datatable.Table, kind prototype.Kind, name string) bool {
	for _, k := range v.targets[kind] {
		if _, ok := tbl.Get(k, name); ok {
			return true
		}
	}
	return false
}

// scan walks one prototype.
type scan struct {
	v       *Validator
	tbl     *datatable.Table
	from    datatable.Key
	broken  []BrokenReference
	checked int
}

func (s *scan) prototype(p prototype.Prototype) {
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	for _, f := range s.v.reg.Fields(s.from.Kind) {
		if !f.HasRefs() {
			continue
		}
		s.walk(f.Info, rv.FieldByIndex(f.Index), fieldpath.Root.Field(f.Name), f.Ref)
	}
}

func (s *scan) walk(ti *registry.TypeInfo, rv reflect.Value, path fieldpath.Path, ref prototype.Kind) {
	if ti.Referencer {
		s.referencer(rv, path)
	}

	switch ti.Shape {
	case registry.ShapeString:
		if ref != "" {
			s.check(ref, rv.String(), path)
		}
	case registry.ShapeSlice:
		for i := 0; i < rv.Len(); i++ {
			s.walk(ti.Elem, rv.Index(i), path.Index(i+1), ref)
		}
	case registry.ShapeMap:
		for _, key := range sortedKeys(rv) {
			var sub fieldpath.Path
			if key.Kind() == reflect.String {
				sub = path.Field(key.String())
			} else {
				sub = path.Index(int(key.Convert(reflect.TypeOf(int64(0))).Int()))
			}
			s.walk(ti.Elem, rv.MapIndex(key), sub, ref)
		}
	case registry.ShapePointer:
		if !rv.IsNil() {
			s.walk(ti.Elem, rv.Elem(), path, ref)
		}
	case registry.ShapeStruct:
		for _, f := range ti.Struct.Fields {
			if f.HasRefs() {
				s.walk(f.Info, rv.FieldByIndex(f.Index), path.Field(f.Name), f.Ref)
			}
		}
	}
}

func (s *scan) referencer(rv reflect.Value, path fieldpath.Path) {
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	for _, r := range rv.Addr().Interface().(prototype.Referencer).References() {
		at := path
		if r.Field != "" {
			if rel, err := fieldpath.Parse(r.Field); err == nil {
				at = path.Join(rel)
			} else {
				at = path.Field(r.Field)
			}
		}
		s.check(r.Kind, r.Name, at)
	}
}

// check looks a target up. Empty names mean the field was left unset.
func (s *scan) check(kind prototype.Kind, name string, path fieldpath.Path) {
	if name == "" {
		return
	}
	s.checked++
	if s.v.exists(s.tbl, kind, name) {
		return
	}
	s.broken = append(s.broken, BrokenReference{
		TargetKind: kind,
		TargetName: name,
		FromKind:   s.from.Kind,
		FromName:   s.from.Name,
		Path:       path,
	})
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Uint32:
			return cmp.Compare(a.Uint(), b.Uint())
		default:
			return cmp.Compare(a.Int(), b.Int())
		}
	})
	return keys
}
