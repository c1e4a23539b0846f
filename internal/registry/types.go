package registry

import (
	"reflect"
	"slices"

	"github.com/specialistvlad/protocatalog/internal/prototype"
)

// Shape is the decoding strategy for a Go type.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeRaw           // value.Value, passed through untouched
	ShapeDecoder       // implements value.Decoder
	ShapeString
	ShapeBool
	ShapeInt
	ShapeUint
	ShapeFloat
	ShapeSlice
	ShapeMap
	ShapePointer
	ShapeStruct
)

var shapeNames = [...]string{"invalid", "raw", "decoder", "string", "boolean", "integer", "unsigned integer", "number", "array", "table", "optional", "table"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// TypeInfo is the compiled decoding plan for one Go type.
type TypeInfo struct {
	Type  reflect.Type
	Shape Shape
	// Elem is the element plan of slices, maps and pointers.
	Elem *TypeInfo
	// Struct holds the field plan of struct types.
	Struct *StructSchema
	// HasRefs is true when a value of this type may carry weak references.
	HasRefs bool
	// Referencer is true when *Type implements prototype.Referencer.
	Referencer bool
}

// Leaf unwraps slices, maps and pointers down to the element plan.
func (ti *TypeInfo) Leaf() *TypeInfo {
	for ti.Elem != nil {
		ti = ti.Elem
	}
	return ti
}

// StructSchema is the ordered list of tagged fields of a struct type,
// with embedded untagged structs inlined.
type StructSchema struct {
	Type   reflect.Type
	Fields []*FieldDescriptor
}

// FieldDescriptor describes one tagged field.
type FieldDescriptor struct {
	Name   string
	GoName string
	// Index is the field index path relative to the declaring struct.
	Index []int
	Info  *TypeInfo

	Required bool
	Single   bool
	// Default is valid only when HasDefault is true.
	Default    reflect.Value
	HasDefault bool
	OneOf      []string
	Ref        prototype.Kind
}

// Allows reports whether s is an accepted variant of a oneof field.
// Fields without a oneof restriction accept any string.
func (f *FieldDescriptor) Allows(s string) bool {
	return len(f.OneOf) == 0 || slices.Contains(f.OneOf, s)
}

// HasRefs reports whether the field or anything below it may hold a reference.
func (f *FieldDescriptor) HasRefs() bool {
	return f.Ref != "" || f.Info.HasRefs
}

// BoundField is a field descriptor placed inside a concrete prototype struct.
type BoundField struct {
	*FieldDescriptor
	// Index is the full field index path from the concrete struct.
	Index []int
	// Owner is the kind whose layer declares the field.
	Owner prototype.Kind
}

// LayerInfo locates one kind's layer inside a concrete struct.
type LayerInfo struct {
	Kind  prototype.Kind
	Type  reflect.Type
	Index []int
}
