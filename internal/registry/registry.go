package registry

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/protocatalog/internal/prototype"
)

// KindInfo is everything the registry knows about one kind.
type KindInfo struct {
	Name   prototype.Kind
	Parent prototype.Kind
	// Chain lists the ancestry from the root to this kind inclusive.
	Chain    []prototype.Kind
	Abstract bool
	// Own holds the descriptors this kind's layer declares.
	Own []*FieldDescriptor
	// Type is the concrete Go struct. Nil for abstract kinds.
	Type reflect.Type
	// Layers locates each ancestor layer inside Type, root first.
	Layers []LayerInfo

	start, end int
	newFn      func() prototype.Prototype
}

// Registry is the immutable catalog of prototype kinds.
type Registry struct {
	kinds    map[prototype.Kind]*KindInfo
	order    []prototype.Kind
	children map[prototype.Kind][]prototype.Kind
	// arena stores the flattened descriptors of every concrete kind back to back.
	arena []BoundField
}

// Lookup resolves a kind name. Unknown names yield an error wrapping ErrUnknownKind.
func (r *Registry) Lookup(name string) (*KindInfo, error) {
	info, ok := r.kinds[prototype.Kind(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return info, nil
}

// Kind returns the info of a registered kind.
func (r *Registry) Kind(k prototype.Kind) (*KindInfo, bool) {
	info, ok := r.kinds[k]
	return info, ok
}

// Has reports whether k is registered.
func (r *Registry) Has(k prototype.Kind) bool {
	_, ok := r.kinds[k]
	return ok
}

// Kinds returns every kind in registration order.
func (r *Registry) Kinds() []prototype.Kind {
	return slices.Clone(r.order)
}

// Fields returns the flattened descriptor list of a concrete kind, root
// ancestor first. Abstract and unknown kinds have none.
func (r *Registry) Fields(k prototype.Kind) []BoundField {
	info, ok := r.kinds[k]
	if !ok || info.Abstract {
		return nil
	}
	return r.arena[info.start:info.end:info.end]
}

// New allocates a zero instance of a concrete kind with its identity set.
func (r *Registry) New(k prototype.Kind, name string) (prototype.Identifiable, error) {
	info, ok := r.kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	if info.Abstract {
		return nil, fmt.Errorf("%w: %q", ErrAbstractKind, k)
	}
	inst := info.newFn().(prototype.Identifiable)
	inst.SetIdentity(k, name)
	return inst, nil
}

// IsA reports whether k is ancestor itself or descends from it.
func (r *Registry) IsA(k, ancestor prototype.Kind) bool {
	info, ok := r.kinds[k]
	if !ok {
		return false
	}
	return slices.Contains(info.Chain, ancestor)
}

// Children returns the direct descendants of k in registration order.
func (r *Registry) Children(k prototype.Kind) []prototype.Kind {
	return slices.Clone(r.children[k])
}

// ConcreteDescendants returns k itself when concrete plus every concrete
// kind below it, depth first in registration order.
func (r *Registry) ConcreteDescendants(k prototype.Kind) []prototype.Kind {
	var out []prototype.Kind
	var walk func(prototype.Kind)
	walk = func(cur prototype.Kind) {
		if info, ok := r.kinds[cur]; ok && !info.Abstract {
			out = append(out, cur)
		}
		for _, child := range r.children[cur] {
			walk(child)
		}
	}
	walk(k)
	return out
}
