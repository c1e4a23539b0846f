package convert

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// decoder populates Go values from value tree nodes for one prototype.
type decoder struct {
	cc *Context
}

// field extracts one tagged field from tbl into dst.
func (d *decoder) field(fd *registry.FieldDescriptor, dst reflect.Value, tbl *value.Table, path fieldpath.Path) error {
	fpath := path.Field(fd.Name)
	v, ok := tbl.Field(fd.Name)
	if !ok || v.IsNil() {
		switch {
		case fd.Required:
			return &ConversionError{Reason: MissingRequiredField, Path: fpath}
		case fd.HasDefault:
			dst.Set(fd.Default)
		}
		return nil
	}
	return d.value(fd, fd.Info, v, dst, fpath)
}

// value decodes v into dst following the plan ti. fd carries the tag options
// of the field the value belongs to.
func (d *decoder) value(fd *registry.FieldDescriptor, ti *registry.TypeInfo, v value.Value, dst reflect.Value, path fieldpath.Path) error {
	if v.IsNil() && ti.Shape == registry.ShapePointer {
		return nil
	}

	switch ti.Shape {
	case registry.ShapeRaw:
		dst.Set(reflect.ValueOf(v))

	case registry.ShapeDecoder:
		if tbl, ok := v.AsTable(); ok {
			if key, dup := tbl.FirstDuplicate(); dup {
				return &ConversionError{Reason: DuplicateKeyInTable, Path: path, Key: key.String()}
			}
		}
		ptr := reflect.New(ti.Type)
		if err := ptr.Interface().(value.Decoder).DecodeValue(v); err != nil {
			return locate(err, path)
		}
		dst.Set(ptr.Elem())

	case registry.ShapeString:
		s, ok := v.AsString()
		if !ok {
			return mismatch(path, "string", v)
		}
		if !fd.Allows(s) {
			return &ConversionError{Reason: UnknownEnumVariant, Path: path, Variant: s, Allowed: fd.OneOf}
		}
		dst.SetString(s)

	case registry.ShapeBool:
		b, ok := v.AsBool()
		if !ok {
			return mismatch(path, "boolean", v)
		}
		dst.SetBool(b)

	case registry.ShapeInt:
		n, ok := v.AsInt()
		if !ok || dst.OverflowInt(n) {
			return mismatch(path, ti.Type.Kind().String(), v)
		}
		dst.SetInt(n)

	case registry.ShapeUint:
		n, ok := v.AsInt()
		if !ok || n < 0 || dst.OverflowUint(uint64(n)) {
			return mismatch(path, ti.Type.Kind().String(), v)
		}
		dst.SetUint(uint64(n))

	case registry.ShapeFloat:
		f, ok := v.AsFloat()
		if !ok || dst.OverflowFloat(f) {
			return mismatch(path, "number", v)
		}
		dst.SetFloat(f)

	case registry.ShapeSlice:
		return d.sequence(fd, ti, v, dst, path, fd.Single && ti == fd.Info)

	case registry.ShapeMap:
		return d.mapping(fd, ti, v, dst, path)

	case registry.ShapePointer:
		ptr := reflect.New(ti.Elem.Type)
		if err := d.value(fd, ti.Elem, v, ptr.Elem(), path); err != nil {
			return err
		}
		dst.Set(ptr)

	case registry.ShapeStruct:
		tbl, ok := v.AsTable()
		if !ok {
			return mismatch(path, "table", v)
		}
		return d.structure(ti.Struct, tbl, dst, path)

	default:
		return &ConversionError{Reason: NestedConversionFailure, Path: path, Err: fmt.Errorf("type %s cannot be decoded", ti.Type)}
	}
	return nil
}

// sequence converts an array-like table element by element. The first failing
// element aborts the field and nothing is assigned.
func (d *decoder) sequence(fd *registry.FieldDescriptor, ti *registry.TypeInfo, v value.Value, dst reflect.Value, path fieldpath.Path, single bool) error {
	tbl, ok := v.AsTable()
	if !ok || !tbl.IsSequence() {
		if !single {
			return mismatch(path, "array", v)
		}
		out := reflect.MakeSlice(ti.Type, 1, 1)
		if err := d.value(fd, ti.Elem, v, out.Index(0), path); err != nil {
			return err
		}
		dst.Set(out)
		return nil
	}

	out := reflect.MakeSlice(ti.Type, tbl.Len(), tbl.Len())
	for i, e := range tbl.Entries() {
		if err := d.value(fd, ti.Elem, e.Value, out.Index(i), path.Index(i+1)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func (d *decoder) mapping(fd *registry.FieldDescriptor, ti *registry.TypeInfo, v value.Value, dst reflect.Value, path fieldpath.Path) error {
	tbl, ok := v.AsTable()
	if !ok {
		return mismatch(path, "table", v)
	}
	if key, dup := tbl.FirstDuplicate(); dup {
		return &ConversionError{Reason: DuplicateKeyInTable, Path: path, Key: key.String()}
	}

	keyType := ti.Type.Key()
	out := reflect.MakeMapWithSize(ti.Type, tbl.Len())
	for _, e := range tbl.Entries() {
		kv := reflect.New(keyType).Elem()
		var epath fieldpath.Path

		if keyType.Kind() == reflect.String {
			kv.SetString(e.Key.String())
			epath = path.Field(e.Key.String())
		} else {
			n, isInt := e.Key.Int()
			if !isInt {
				return mismatch(path, "table with integer keys", value.String(e.Key.String()))
			}
			switch keyType.Kind() {
			case reflect.Uint32:
				kv.SetUint(uint64(n))
			default:
				kv.SetInt(n)
			}
			epath = path.Index(int(n))
		}

		ev := reflect.New(ti.Elem.Type).Elem()
		if err := d.value(fd, ti.Elem, e.Value, ev, epath); err != nil {
			return err
		}
		out.SetMapIndex(kv, ev)
	}
	dst.Set(out)
	return nil
}

// structure decodes every field of a nested schema, then runs its hook.
func (d *decoder) structure(schema *registry.StructSchema, tbl *value.Table, dst reflect.Value, path fieldpath.Path) error {
	if key, dup := tbl.FirstDuplicate(); dup {
		return &ConversionError{Reason: DuplicateKeyInTable, Path: path, Key: key.String()}
	}
	for _, fd := range schema.Fields {
		if err := d.field(fd, dst.FieldByIndex(fd.Index), tbl, path); err != nil {
			return err
		}
	}
	return d.hook(dst.Addr(), path)
}

func (d *decoder) hook(ptr reflect.Value, path fieldpath.Path) error {
	pc, ok := ptr.Interface().(PostConverter)
	if !ok {
		return nil
	}
	if err := pc.PostConvert(d.cc); err != nil {
		return locate(err, path)
	}
	return nil
}

func mismatch(path fieldpath.Path, expected string, got value.Value) error {
	return &ConversionError{Reason: UnexpectedFieldType, Path: path, Expected: expected, Actual: got.Describe()}
}

// locate turns an error raised by a decoder or hook into a ConversionError
// rooted at path.
func locate(err error, path fieldpath.Path) error {
	var ce *ConversionError
	if errors.As(err, &ce) {
		ce.Path = path.Join(ce.Path)
		return ce
	}
	var mm *value.MismatchError
	if errors.As(err, &mm) {
		return &ConversionError{Reason: UnexpectedFieldType, Path: path, Expected: mm.Expected, Actual: mm.Actual}
	}
	return &ConversionError{Reason: NestedConversionFailure, Path: path, Err: err}
}
