package registry

import (
	"reflect"
	"strings"

	"github.com/specialistvlad/protocatalog/internal/prototype"
)

// Module is the interface that all prototype modules implement to be registered.
type Module interface {
	Register(b *Builder)
}

// KindSpec declares one prototype kind.
type KindSpec struct {
	Name prototype.Kind
	// Parent is empty only for the root kind.
	Parent prototype.Kind
	// Layer is a zero value of the struct holding the fields this kind adds.
	// Nil when the kind adds no fields.
	Layer any
	// New allocates a concrete instance. Nil marks the kind abstract.
	New func() prototype.Prototype
}

// Builder collects kind declarations and validates them into a Registry.
type Builder struct {
	specs []KindSpec
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Register adds a kind declaration. Problems are reported by Build.
func (b *Builder) Register(spec KindSpec) {
	b.specs = append(b.specs, spec)
}

// Use registers every kind of the given modules.
func (b *Builder) Use(modules ...Module) *Builder {
	for _, m := range modules {
		m.Register(b)
	}
	return b
}

// MustBuild is like Build but panics on any defect. Registry defects are
// programming errors in the prototype declarations.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// Build validates every declaration and derives the flattened descriptor
// list of each kind. It returns a *BuildError listing every defect found.
func (b *Builder) Build() (*Registry, error) {
	errs := &defects{}
	specs := make(map[prototype.Kind]*KindSpec, len(b.specs))
	var order []prototype.Kind

	for i := range b.specs {
		spec := &b.specs[i]
		if spec.Name == "" {
			errs.addf("kind #%d has no name", i)
			continue
		}
		if _, exists := specs[spec.Name]; exists {
			errs.addf("kind %q registered more than once", spec.Name)
			continue
		}
		specs[spec.Name] = spec
		order = append(order, spec.Name)
	}

	var roots []prototype.Kind
	for _, name := range order {
		spec := specs[name]
		if spec.Parent == "" {
			roots = append(roots, name)
			continue
		}
		if _, ok := specs[spec.Parent]; !ok {
			errs.addf("kind %q: parent %q is not registered", name, spec.Parent)
		}
	}
	switch len(roots) {
	case 0:
		errs.addf("no root kind registered")
	case 1:
	default:
		errs.addf("more than one root kind: %v", roots)
	}

	chains := make(map[prototype.Kind][]prototype.Kind, len(order))
	for _, name := range order {
		chain, ok := resolveChain(name, specs, errs)
		if ok {
			chains[name] = chain
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	c := newCompiler(errs)
	layers := make(map[prototype.Kind]*StructSchema, len(order))
	for _, name := range order {
		spec := specs[name]
		if spec.Layer == nil {
			continue
		}
		lt := reflect.TypeOf(spec.Layer)
		if lt.Kind() == reflect.Pointer {
			lt = lt.Elem()
		}
		if lt.Kind() != reflect.Struct {
			errs.addf("kind %q: layer must be a struct, got %s", name, lt)
			continue
		}
		layers[name] = c.structSchema(lt)
	}

	r := &Registry{
		kinds:    make(map[prototype.Kind]*KindInfo, len(order)),
		order:    order,
		children: make(map[prototype.Kind][]prototype.Kind),
	}

	for _, name := range order {
		spec := specs[name]
		info := &KindInfo{
			Name:     name,
			Parent:   spec.Parent,
			Chain:    chains[name],
			Abstract: spec.New == nil,
			newFn:    spec.New,
		}
		if own, ok := layers[name]; ok {
			info.Own = own.Fields
		}
		checkCollisions(info, layers, errs)
		if !info.Abstract {
			r.bindConcrete(info, layers, errs)
		}
		r.kinds[name] = info
		if spec.Parent != "" {
			r.children[spec.Parent] = append(r.children[spec.Parent], name)
		}
	}

	for _, fd := range c.fields {
		if fd.Ref == "" {
			continue
		}
		if _, ok := specs[fd.Ref]; !ok {
			errs.addf("field %q references unknown kind %q", fd.Name, fd.Ref)
		}
	}
	c.resolveRefs()

	if err := errs.err(); err != nil {
		return nil, err
	}
	return r, nil
}

func resolveChain(name prototype.Kind, specs map[prototype.Kind]*KindSpec, errs *defects) ([]prototype.Kind, bool) {
	var rev []prototype.Kind
	seen := make(map[prototype.Kind]bool)
	for cur := name; cur != ""; {
		if seen[cur] {
			errs.addf("kind %q: inheritance cycle through %q", name, cur)
			return nil, false
		}
		seen[cur] = true
		rev = append(rev, cur)
		spec, ok := specs[cur]
		if !ok {
			return nil, false
		}
		cur = spec.Parent
	}

	chain := make([]prototype.Kind, len(rev))
	for i, k := range rev {
		chain[len(rev)-1-i] = k
	}
	return chain, true
}

func checkCollisions(info *KindInfo, layers map[prototype.Kind]*StructSchema, errs *defects) {
	owners := make(map[string]prototype.Kind)
	for _, k := range info.Chain {
		schema, ok := layers[k]
		if !ok {
			continue
		}
		for _, fd := range schema.Fields {
			if prev, dup := owners[fd.Name]; dup && prev != k {
				errs.addf("kind %q: field %q declared by both %q and %q", info.Name, fd.Name, prev, k)
				continue
			}
			owners[fd.Name] = k
		}
	}
}

func (r *Registry) bindConcrete(info *KindInfo, layers map[prototype.Kind]*StructSchema, errs *defects) {
	inst := info.newFn()
	if inst == nil {
		errs.addf("kind %q: constructor returned nil", info.Name)
		return
	}
	if _, ok := inst.(prototype.Identifiable); !ok {
		errs.addf("kind %q: %T does not embed prototype.PrototypeBase", info.Name, inst)
		return
	}
	pt := reflect.TypeOf(inst)
	if pt.Kind() != reflect.Pointer || pt.Elem().Kind() != reflect.Struct {
		errs.addf("kind %q: constructor must return a pointer to a struct, got %s", info.Name, pt)
		return
	}
	st := pt.Elem()
	info.Type = st

	bound := make(map[string]bool)
	info.start = len(r.arena)
	for _, k := range info.Chain {
		schema, ok := layers[k]
		if !ok {
			continue
		}
		idx, found := findEmbedded(st, schema.Type)
		if !found {
			errs.addf("kind %q: %s does not embed layer %s of %q", info.Name, st, schema.Type, k)
			continue
		}
		if !exportedPath(st, idx) {
			errs.addf("kind %q: layer %s of %q must be embedded through exported fields", info.Name, schema.Type, k)
			continue
		}
		info.Layers = append(info.Layers, LayerInfo{Kind: k, Type: schema.Type, Index: idx})
		for _, fd := range schema.Fields {
			full := make([]int, 0, len(idx)+len(fd.Index))
			full = append(append(full, idx...), fd.Index...)
			r.arena = append(r.arena, BoundField{FieldDescriptor: fd, Index: full, Owner: k})
			bound[fd.Name] = true
		}
	}
	info.end = len(r.arena)

	var extra []string
	for _, name := range taggedNames(st) {
		if !bound[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		errs.addf("kind %q: fields [%s] of %s are not declared by any layer in its ancestry", info.Name, strings.Join(extra, ", "), st)
	}
}

func exportedPath(t reflect.Type, idx []int) bool {
	for _, i := range idx {
		sf := t.Field(i)
		if !sf.IsExported() {
			return false
		}
		t = sf.Type
	}
	return true
}
