package registry

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
)

var (
	valueType      = reflect.TypeOf(value.Value{})
	decoderType    = reflect.TypeOf((*value.Decoder)(nil)).Elem()
	referencerType = reflect.TypeOf((*prototype.Referencer)(nil)).Elem()
)

// compiler turns Go types into decoding plans, caching every type once so
// recursive types such as animations with nested layers terminate.
type compiler struct {
	cache  map[reflect.Type]*TypeInfo
	infos  []*TypeInfo
	fields []*FieldDescriptor
	errs   *defects
}

func newCompiler(errs *defects) *compiler {
	return &compiler{cache: make(map[reflect.Type]*TypeInfo), errs: errs}
}

func (c *compiler) typeInfo(t reflect.Type) *TypeInfo {
	if ti, ok := c.cache[t]; ok {
		return ti
	}
	ti := &TypeInfo{Type: t}
	c.cache[t] = ti
	c.infos = append(c.infos, ti)
	ti.Referencer = reflect.PointerTo(t).Implements(referencerType)

	switch {
	case t == valueType:
		ti.Shape = ShapeRaw
		return ti
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(decoderType):
		ti.Shape = ShapeDecoder
		return ti
	}

	switch t.Kind() {
	case reflect.String:
		ti.Shape = ShapeString
	case reflect.Bool:
		ti.Shape = ShapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ti.Shape = ShapeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ti.Shape = ShapeUint
	case reflect.Float32, reflect.Float64:
		ti.Shape = ShapeFloat
	case reflect.Slice:
		ti.Shape = ShapeSlice
		ti.Elem = c.typeInfo(t.Elem())
	case reflect.Map:
		switch t.Key().Kind() {
		case reflect.String, reflect.Int, reflect.Int32, reflect.Int64, reflect.Uint32:
		default:
			c.errs.addf("type %s: map keys must be strings or integers", t)
		}
		ti.Shape = ShapeMap
		ti.Elem = c.typeInfo(t.Elem())
	case reflect.Pointer:
		ti.Shape = ShapePointer
		ti.Elem = c.typeInfo(t.Elem())
	case reflect.Struct:
		ti.Shape = ShapeStruct
		ti.Struct = &StructSchema{Type: t}
		c.collect(t, nil, ti.Struct)
	default:
		c.errs.addf("type %s: kind %s cannot be decoded", t, t.Kind())
	}
	return ti
}

// structSchema compiles a layer struct.
func (c *compiler) structSchema(t reflect.Type) *StructSchema {
	ti := c.typeInfo(t)
	if ti.Struct == nil {
		return &StructSchema{Type: t}
	}
	return ti.Struct
}

func (c *compiler) collect(t reflect.Type, prefix []int, schema *StructSchema) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := appendIndex(prefix, i)
		tag, tagged := sf.Tag.Lookup(tagName)

		if sf.Anonymous && !tagged {
			if sf.Type.Kind() == reflect.Struct {
				c.collect(sf.Type, idx, schema)
			}
			continue
		}
		if !tagged || tag == "-" {
			continue
		}
		if !sf.IsExported() {
			c.errs.addf("type %s: field %s is tagged but not exported", t, sf.Name)
			continue
		}

		opts, err := parseTag(tag)
		if err != nil {
			c.errs.addf("type %s, field %s: %v", t, sf.Name, err)
			continue
		}
		for _, existing := range schema.Fields {
			if existing.Name == opts.name {
				c.errs.addf("type %s: field name %q declared by both %s and %s", schema.Type, opts.name, existing.GoName, sf.Name)
			}
		}

		fd := &FieldDescriptor{
			Name:     opts.name,
			GoName:   sf.Name,
			Index:    idx,
			Info:     c.typeInfo(sf.Type),
			Required: opts.required,
			Single:   opts.single,
			OneOf:    opts.oneOf,
			Ref:      opts.ref,
		}
		c.checkOptions(schema.Type, fd, opts)
		schema.Fields = append(schema.Fields, fd)
		c.fields = append(c.fields, fd)
	}
}

func (c *compiler) checkOptions(owner reflect.Type, fd *FieldDescriptor, opts tagOptions) {
	where := fmt.Sprintf("type %s, field %q", owner, fd.Name)

	if fd.Single && fd.Info.Shape != ShapeSlice {
		c.errs.addf("%s: single applies to sequences only, got %s", where, fd.Info.Type)
	}
	if (len(fd.OneOf) > 0 || fd.Ref != "") && fd.Info.Leaf().Shape != ShapeString {
		c.errs.addf("%s: oneof and ref apply to string values only, got %s", where, fd.Info.Type)
	}
	if !opts.hasDefault {
		return
	}
	def, err := parseDefault(fd.Info, opts.defaultLit)
	if err != nil {
		c.errs.addf("%s: invalid default %q: %v", where, opts.defaultLit, err)
		return
	}
	if fd.Info.Shape == ShapeString && opts.defaultLit != "" && !fd.Allows(opts.defaultLit) {
		c.errs.addf("%s: default %q is not one of %v", where, opts.defaultLit, fd.OneOf)
		return
	}
	fd.Default = def
	fd.HasDefault = true
}

// resolveRefs marks every type that may carry a reference, iterating until
// stable because types can be recursive.
func (c *compiler) resolveRefs() {
	for changed := true; changed; {
		changed = false
		for _, ti := range c.infos {
			if ti.HasRefs || !ti.mayHoldRefs() {
				continue
			}
			ti.HasRefs = true
			changed = true
		}
	}
}

func (ti *TypeInfo) mayHoldRefs() bool {
	if ti.Referencer {
		return true
	}
	switch ti.Shape {
	case ShapeSlice, ShapeMap, ShapePointer:
		return ti.Elem.HasRefs
	case ShapeStruct:
		for _, f := range ti.Struct.Fields {
			if f.HasRefs() {
				return true
			}
		}
	}
	return false
}

func parseDefault(ti *TypeInfo, lit string) (reflect.Value, error) {
	rv := reflect.New(ti.Type).Elem()

	switch ti.Shape {
	case ShapeString:
		rv.SetString(lit)
	case ShapeBool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return rv, err
		}
		rv.SetBool(b)
	case ShapeInt:
		n, err := strconv.ParseInt(lit, 10, ti.Type.Bits())
		if err != nil {
			return rv, err
		}
		rv.SetInt(n)
	case ShapeUint:
		n, err := strconv.ParseUint(lit, 10, ti.Type.Bits())
		if err != nil {
			return rv, err
		}
		rv.SetUint(n)
	case ShapeFloat:
		f, err := strconv.ParseFloat(lit, ti.Type.Bits())
		if err != nil {
			return rv, err
		}
		rv.SetFloat(f)
	case ShapeDecoder:
		dec := rv.Addr().Interface().(value.Decoder)
		if err := dec.DecodeValue(literalValue(lit)); err != nil {
			return rv, err
		}
	default:
		return rv, fmt.Errorf("defaults are not supported for %s fields", ti.Shape)
	}
	return rv, nil
}

// literalValue interprets a default literal the way a script would write it.
func literalValue(lit string) value.Value {
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return value.Int(n)
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return value.Float(f)
	}
	if b, err := strconv.ParseBool(lit); err == nil {
		return value.Bool(b)
	}
	return value.String(lit)
}

func appendIndex(prefix []int, i int) []int {
	out := make([]int, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, i)
}

// findEmbedded returns the index path of the first embedded field of type
// target, searching breadth first through embedded structs.
func findEmbedded(t reflect.Type, target reflect.Type) ([]int, bool) {
	type item struct {
		t   reflect.Type
		idx []int
	}
	queue := []item{{t: t}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := 0; i < cur.t.NumField(); i++ {
			sf := cur.t.Field(i)
			if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
				continue
			}
			idx := appendIndex(cur.idx, i)
			if sf.Type == target {
				return idx, true
			}
			queue = append(queue, item{t: sf.Type, idx: idx})
		}
	}
	return nil, false
}

// taggedNames lists the tag names reachable from t, inlining embedded structs.
func taggedNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup(tagName)
		if sf.Anonymous && !tagged {
			if sf.Type.Kind() == reflect.Struct {
				names = append(names, taggedNames(sf.Type)...)
			}
			continue
		}
		if tagged && tag != "-" {
			if opts, err := parseTag(tag); err == nil {
				names = append(names, opts.name)
			}
		}
	}
	return names
}
