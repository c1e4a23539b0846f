// internal/value/encode.go
package value

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Interface converts v to plain Go data: nil, bool, int64, float64,
// string, []any for non-empty sequences and map[string]any for every
// other table. Integer keys of mixed tables become their decimal form.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTable:
		if v.t.Len() > 0 && v.t.IsSequence() {
			out := make([]any, 0, v.t.Len())
			for _, e := range v.t.entries {
				out = append(out, e.Value.Interface())
			}
			return out
		}
		out := make(map[string]any, v.t.Len())
		for _, e := range v.t.entries {
			if _, dup := out[e.Key.String()]; !dup {
				out[e.Key.String()] = e.Value.Interface()
			}
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler. Tables keep their pair order.
func (v Value) MarshalYAML() (any, error) {
	return v.Node(), nil
}

// Node renders v as a YAML node.
func (v Value) Node() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindInteger:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.String()}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindTable:
		if v.t.Len() > 0 && v.t.IsSequence() {
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, e := range v.t.entries {
				n.Content = append(n.Content, e.Value.Node())
			}
			return n
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.t.entries {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key.String()}
			n.Content = append(n.Content, key, e.Value.Node())
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
