package export

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
)

var valueType = reflect.TypeFor[value.Value]()

// Node renders p as a YAML mapping that starts with its type and name.
func Node(reg *registry.Registry, p prototype.Prototype) (*yaml.Node, error) {
	fields := reg.Fields(p.Kind())
	if fields == nil {
		return nil, fmt.Errorf("kind %q has no concrete fields", p.Kind())
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("prototype %s/%s is not a non-nil pointer", p.Kind(), p.Name())
	}
	rv = rv.Elem()

	doc := mapping()
	appendPair(doc, "type", scalar("!!str", string(p.Kind())))
	appendPair(doc, "name", scalar("!!str", p.Name()))
	for _, f := range fields {
		n, err := encode(f.Info, rv.FieldByIndex(f.Index))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if n != nil {
			appendPair(doc, f.Name, n)
		}
	}
	return doc, nil
}

// YAML writes p as a YAML document.
func YAML(w io.Writer, reg *registry.Registry, p prototype.Prototype) error {
	doc, err := Node(reg, p)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// JSON writes p as an indented JSON object. Keys are sorted.
func JSON(w io.Writer, reg *registry.Registry, p prototype.Prototype) error {
	doc, err := Node(reg, p)
	if err != nil {
		return err
	}
	var plain any
	if err := doc.Decode(&plain); err != nil {
		return err
	}
	out, err := json.MarshalIndent(plain, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}

// encode returns nil for values that should be omitted.
func encode(ti *registry.TypeInfo, rv reflect.Value) (*yaml.Node, error) {
	switch ti.Shape {
	case registry.ShapeRaw:
		v := rv.Interface().(value.Value)
		if v.IsNil() {
			return nil, nil
		}
		return v.Node(), nil
	case registry.ShapeDecoder:
		return encodeDecoder(rv)
	case registry.ShapeString:
		if rv.String() == "" {
			return nil, nil
		}
		return scalar("!!str", rv.String()), nil
	case registry.ShapeBool:
		return scalar("!!bool", strconv.FormatBool(rv.Bool())), nil
	case registry.ShapeInt:
		return scalar("!!int", strconv.FormatInt(rv.Int(), 10)), nil
	case registry.ShapeUint:
		return scalar("!!int", strconv.FormatUint(rv.Uint(), 10)), nil
	case registry.ShapeFloat:
		return scalar("!!float", strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())), nil
	case registry.ShapePointer:
		if rv.IsNil() {
			return nil, nil
		}
		return encode(ti.Elem, rv.Elem())
	case registry.ShapeSlice:
		if rv.Len() == 0 {
			return nil, nil
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := range rv.Len() {
			n, err := encode(ti.Elem, rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i+1, err)
			}
			if n == nil {
				n = scalar("!!null", "null")
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case registry.ShapeMap:
		if rv.Len() == 0 {
			return nil, nil
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		m := mapping()
		for _, k := range keys {
			n, err := encode(ti.Elem, rv.MapIndex(k))
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", k.Interface(), err)
			}
			if n != nil {
				appendPair(m, fmt.Sprint(k.Interface()), n)
			}
		}
		return m, nil
	case registry.ShapeStruct:
		m := mapping()
		for _, fd := range ti.Struct.Fields {
			n, err := encode(fd.Info, rv.FieldByIndex(fd.Index))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fd.Name, err)
			}
			if n != nil {
				appendPair(m, fd.Name, n)
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot export %s values", ti.Shape)
	}
}

// encodeDecoder prefers a String method and falls back to yaml reflection.
func encodeDecoder(rv reflect.Value) (*yaml.Node, error) {
	if rv.Type() == valueType {
		return rv.Interface().(value.Value).Node(), nil
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return scalar("!!str", s.String()), nil
	}
	n := &yaml.Node{}
	if err := n.Encode(rv.Interface()); err != nil {
		return nil, err
	}
	return n, nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func appendPair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, scalar("!!str", key), v)
}
