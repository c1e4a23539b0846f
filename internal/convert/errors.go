package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

var (
	// ErrConversion matches every *ConversionError.
	ErrConversion = errors.New("prototype conversion failed")
	// ErrStructure matches every *StructuralError.
	ErrStructure = errors.New("malformed prototype tree")
)

// Reason classifies a ConversionError.
type Reason int

const (
	MissingRequiredField Reason = iota + 1
	UnexpectedFieldType
	UnknownEnumVariant
	DuplicateKeyInTable
	NestedConversionFailure
)

func (r Reason) String() string {
	switch r {
	case MissingRequiredField:
		return "MissingRequiredField"
	case UnexpectedFieldType:
		return "UnexpectedFieldType"
	case UnknownEnumVariant:
		return "UnknownEnumVariant"
	case DuplicateKeyInTable:
		return "DuplicateKeyInTable"
	case NestedConversionFailure:
		return "NestedConversionFailure"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ConversionError reports why one prototype could not be converted.
type ConversionError struct {
	Mod  string
	Kind prototype.Kind
	Name string
	// Path locates the offending field inside the prototype definition.
	Path   fieldpath.Path
	Reason Reason

	// Expected and Actual describe an UnexpectedFieldType.
	Expected string
	Actual   string
	// Variant and Allowed describe an UnknownEnumVariant.
	Variant string
	Allowed []string
	// Key is the repeated key of a DuplicateKeyInTable.
	Key string
	// Err is the underlying cause of a NestedConversionFailure.
	Err error
}

// Field returns the full path of the offending field.
func (e *ConversionError) Field() string {
	return e.Path.String()
}

func (e *ConversionError) Error() string {
	var sb strings.Builder
	if e.Kind != "" {
		fmt.Fprintf(&sb, "%s %q", e.Kind, e.Name)
		if e.Mod != "" {
			fmt.Fprintf(&sb, " from mod %q", e.Mod)
		}
		sb.WriteString(": ")
	}
	if !e.Path.IsRoot() && e.Reason != MissingRequiredField {
		fmt.Fprintf(&sb, "field %q: ", e.Path.String())
	}

	switch e.Reason {
	case MissingRequiredField:
		fmt.Fprintf(&sb, "missing required field %q", e.Path.String())
	case UnexpectedFieldType:
		fmt.Fprintf(&sb, "expected %s, got %s", e.Expected, e.Actual)
	case UnknownEnumVariant:
		fmt.Fprintf(&sb, "unknown variant %q, expected one of [%s]", e.Variant, strings.Join(e.Allowed, ", "))
	case DuplicateKeyInTable:
		fmt.Fprintf(&sb, "duplicate key %q", e.Key)
	default:
		fmt.Fprintf(&sb, "%v", e.Err)
	}
	return sb.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// StructuralError reports a value tree that does not have the kind -> name ->
// field table shape, or a definition whose identity fields disagree with
// the keys it is stored under.
type StructuralError struct {
	Mod     string
	Path    string
	Message string
}

func (e *StructuralError) Error() string {
	where := e.Path
	if where == "" {
		where = "top level"
	}
	if e.Mod != "" {
		return fmt.Sprintf("mod %q: malformed prototype tree at %s: %s", e.Mod, where, e.Message)
	}
	return fmt.Sprintf("malformed prototype tree at %s: %s", where, e.Message)
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructure }

// UnknownPrototypeTypeError reports a kind that is not registered, or one that
// is abstract and therefore cannot be instantiated.
type UnknownPrototypeTypeError struct {
	Mod      string
	Kind     string
	Abstract bool
}

func (e *UnknownPrototypeTypeError) Error() string {
	what := "unknown prototype type"
	if e.Abstract {
		what = "abstract prototype type cannot be defined"
	}
	if e.Mod != "" {
		return fmt.Sprintf("mod %q: %s %q", e.Mod, what, e.Kind)
	}
	return fmt.Sprintf("%s %q", what, e.Kind)
}

func (e *UnknownPrototypeTypeError) Unwrap() error {
	if e.Abstract {
		return registry.ErrAbstractKind
	}
	return registry.ErrUnknownKind
}

// Missing reports a required field absent from a PostConvert hook. The path
// is relative to the value the hook runs on.
func Missing(field string) error {
	return &ConversionError{Reason: MissingRequiredField, Path: relative(field)}
}

// Invalid reports a field that violates a cross-field rule from a PostConvert hook.
func Invalid(field string, format string, args ...any) error {
	return &ConversionError{
		Reason: NestedConversionFailure,
		Path:   relative(field),
		Err:    fmt.Errorf(format, args...),
	}
}

// BadVariant reports a string outside its accepted set from a PostConvert hook.
func BadVariant(field, variant string, allowed ...string) error {
	return &ConversionError{
		Reason:  UnknownEnumVariant,
		Path:    relative(field),
		Variant: variant,
		Allowed: allowed,
	}
}

func relative(field string) fieldpath.Path {
	if field == "" {
		return fieldpath.Root
	}
	return fieldpath.Root.Field(field)
}
