package prototype

import "github.com/specialistvlad/protocatalog/internal/locale"

// Kind is the name of a prototype type, e.g. "item" or "assembling-machine".
type Kind string

// RootKind is the kind every other kind descends from.
const RootKind Kind = "prototype-base"

// Prototype is a converted, typed prototype instance.
type Prototype interface {
	Name() string
	Kind() Kind
}

// Identifiable is a Prototype whose identity can be assigned by the engine.
type Identifiable interface {
	Prototype
	SetIdentity(kind Kind, name string)
}

// Identity holds the (kind, name) pair of a prototype.
type Identity struct {
	kind Kind
	name string
}

// Name returns the prototype name.
func (id *Identity) Name() string { return id.name }

// Kind returns the prototype kind.
func (id *Identity) Kind() Kind { return id.kind }

// SetIdentity assigns kind and name.
func (id *Identity) SetIdentity(kind Kind, name string) {
	id.kind = kind
	id.name = name
}

// PrototypeBase is the root layer embedded by every concrete prototype.
type PrototypeBase struct {
	Identity

	Order                string                  `proto:"order"`
	LocalisedName        *locale.LocalisedString `proto:"localised_name"`
	LocalisedDescription *locale.LocalisedString `proto:"localised_description"`
}
