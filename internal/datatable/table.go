package datatable

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
)

// Key identifies a prototype.
type Key struct {
	Kind prototype.Kind
	Name string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Kind, k.Name)
}

// Entry is a stored prototype with its provenance.
type Entry struct {
	Key
	Prototype prototype.Prototype
	// Mod and Phase record who stored the current prototype.
	Mod   string
	Phase phase.Phase
	// Overrides counts how many times the prototype was replaced.
	Overrides int
}

// OverridePolicy decides whether an existing prototype may be replaced.
type OverridePolicy interface {
	OverrideAllowed(kind prototype.Kind, p phase.Phase) bool
}

// Option configures a Table.
type Option func(*Table)

// WithOverridePolicy installs the policy consulted before replacing a prototype.
func WithOverridePolicy(p OverridePolicy) Option {
	return func(t *Table) { t.policy = p }
}

// Table is the catalog of converted prototypes.
type Table struct {
	mu      sync.RWMutex
	frozen  atomic.Bool
	entries map[Key]*Entry
	names   map[prototype.Kind][]string
	kinds   []prototype.Kind
	policy  OverridePolicy

	mod   string
	phase phase.Phase
}

// New creates an empty table.
func New(opts ...Option) *Table {
	t := &Table{
		entries: make(map[Key]*Entry),
		names:   make(map[prototype.Kind][]string),
		phase:   phase.Data,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOrigin records the mod and phase attributed to subsequent inserts.
func (t *Table) SetOrigin(mod string, p phase.Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mod = mod
	t.phase = p
}

// Insert stores inst under (kind, name). When the key already exists the
// stored prototype is replaced and returned, unless the override policy
// refuses, in which case *OverrideNotAllowedError is returned and nothing
// changes. After Freeze, Insert fails with ErrTableFrozen.
func (t *Table) Insert(kind prototype.Kind, name string, inst prototype.Prototype) (prototype.Prototype, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen.Load() {
		return nil, ErrTableFrozen
	}
	if inst == nil {
		return nil, fmt.Errorf("cannot insert nil prototype as %s/%s", kind, name)
	}
	if inst.Kind() != kind || inst.Name() != name {
		return nil, fmt.Errorf("%w: %s/%s inserted as %s/%s", ErrIdentityMismatch, inst.Kind(), inst.Name(), kind, name)
	}

	key := Key{Kind: kind, Name: name}
	if e, ok := t.entries[key]; ok {
		if t.policy != nil && !t.policy.OverrideAllowed(kind, t.phase) {
			return nil, &OverrideNotAllowedError{Kind: kind, Name: name, Phase: t.phase, PreviousMod: e.Mod, Mod: t.mod}
		}
		prev := e.Prototype
		e.Prototype = inst
		e.Mod = t.mod
		e.Phase = t.phase
		e.Overrides++
		return prev, nil
	}

	if _, seen := t.names[kind]; !seen {
		t.kinds = append(t.kinds, kind)
	}
	t.names[kind] = append(t.names[kind], name)
	t.entries[key] = &Entry{Key: key, Prototype: inst, Mod: t.mod, Phase: t.phase}
	return nil, nil
}

// Get returns the prototype stored under (kind, name).
func (t *Table) Get(kind prototype.Kind, name string) (prototype.Prototype, bool) {
	e, ok := t.Entry(kind, name)
	if !ok {
		return nil, false
	}
	return e.Prototype, true
}

// Entry returns the stored entry for (kind, name).
func (t *Table) Entry(kind prototype.Kind, name string) (Entry, bool) {
	defer t.rlock()()
	e, ok := t.entries[Key{Kind: kind, Name: name}]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of stored prototypes.
func (t *Table) Len() int {
	defer t.rlock()()
	return len(t.entries)
}

// Kinds lists every kind that holds at least one prototype.
func (t *Table) Kinds() []prototype.Kind {
	defer t.rlock()()
	return slices.Clone(t.kinds)
}

// Names lists the names stored under kind.
func (t *Table) Names(kind prototype.Kind) []string {
	defer t.rlock()()
	return slices.Clone(t.names[kind])
}

// Entries returns a snapshot of every entry in table order.
func (t *Table) Entries() []Entry {
	defer t.rlock()()
	out := make([]Entry, 0, len(t.entries))
	for _, kind := range t.kinds {
		for _, name := range t.names[kind] {
			out = append(out, *t.entries[Key{Kind: kind, Name: name}])
		}
	}
	return out
}

// Freeze makes the table read-only. Freezing twice is a no-op.
func (t *Table) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen.Store(true)
}

// Frozen reports whether Freeze was called.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// rlock takes the read lock unless the table is frozen and returns the
// matching unlock.
func (t *Table) rlock() func() {
	if t.frozen.Load() {
		return func() {}
	}
	t.mu.RLock()
	return t.mu.RUnlock
}
