package convert

import (
	"github.com/specialistvlad/protocatalog/internal/locale"
	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
)

// TableView is read access to the prototypes converted so far.
type TableView interface {
	Get(kind prototype.Kind, name string) (prototype.Prototype, bool)
}

// Context is the ephemeral state of one conversion call. The table view is
// informational only; references are never resolved through it.
type Context struct {
	Mod    string
	Phase  phase.Phase
	Table  TableView
	Locale *locale.Catalog
}

// PostConverter is implemented by layers and nested structures that need to
// derive defaults or enforce cross-field rules once their fields are decoded.
// Errors built with Missing, Invalid or BadVariant are relative to the value
// the hook runs on.
type PostConverter interface {
	PostConvert(cc *Context) error
}

// PrototypeChecker is implemented by concrete prototype types with rules that
// span more than one layer. CheckPrototype runs after every layer hook.
type PrototypeChecker interface {
	CheckPrototype(cc *Context) error
}
