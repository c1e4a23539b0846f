package prototype

import "fmt"

// Reference names another prototype by kind and name. Kind may be an
// abstract kind, in which case any concrete descendant satisfies it.
type Reference struct {
	Kind Kind
	Name string
	// Field is the path of the referencing field relative to the value
	// that produced the reference. Empty means the value itself.
	Field string
}

func (r Reference) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.Name)
}

// Referencer is implemented by values whose references depend on their
// data, such as an ingredient that names either an item or a fluid.
type Referencer interface {
	References() []Reference
}
