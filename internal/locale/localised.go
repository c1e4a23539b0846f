package locale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// maxDepth bounds parameter nesting, the same limit the game enforces.
const maxDepth = 20

// LocalisedString is a literal text or a key with parameters.
type LocalisedString struct {
	Literal   string
	IsLiteral bool
	Key       string
	Params    []LocalisedString
}

// Literal creates a literal localised string.
func Literal(s string) LocalisedString {
	return LocalisedString{Literal: s, IsLiteral: true}
}

// Keyed creates a localised string that refers to a catalog key.
func Keyed(key string, params ...LocalisedString) LocalisedString {
	return LocalisedString{Key: key, Params: params}
}

// DecodeValue reads a string, number, boolean or `{key, params...}` table.
func (ls *LocalisedString) DecodeValue(v value.Value) error {
	return ls.decode(v, 0)
}

func (ls *LocalisedString) decode(v value.Value, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("localised string nested deeper than %d levels", maxDepth)
	}

	switch v.Kind() {
	case value.KindString, value.KindInteger, value.KindFloat, value.KindBool:
		*ls = Literal(v.String())
		return nil
	case value.KindTable:
		t, _ := v.AsTable()
		if !t.IsSequence() || t.Len() == 0 {
			return value.Mismatch("localised string sequence", v)
		}
		values := t.Values()
		key, ok := values[0].AsString()
		if !ok {
			return value.Mismatch("string key", values[0])
		}
		out := LocalisedString{Key: key}
		for i, pv := range values[1:] {
			var p LocalisedString
			if err := p.decode(pv, depth+1); err != nil {
				return fmt.Errorf("in parameter %d: %w", i+1, err)
			}
			out.Params = append(out.Params, p)
		}
		*ls = out
		return nil
	default:
		return value.Mismatch("localised string", v)
	}
}

// MarshalYAML writes ls back in the form it is read from: a literal
// string or a sequence of the key followed by its parameters.
func (ls LocalisedString) MarshalYAML() (any, error) {
	if ls.IsLiteral {
		return ls.Literal, nil
	}
	out := make([]any, 0, len(ls.Params)+1)
	out = append(out, ls.Key)
	for _, p := range ls.Params {
		v, err := p.MarshalYAML()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Resolve renders ls using the catalog. Unknown keys render as
// `Unknown key: "<key>"`.
func (c *Catalog) Resolve(ls LocalisedString) string {
	text, _ := c.resolve(ls)
	return text
}

func (c *Catalog) resolve(ls LocalisedString) (string, bool) {
	if ls.IsLiteral {
		return ls.Literal, true
	}

	switch ls.Key {
	case "":
		var sb strings.Builder
		for _, p := range ls.Params {
			text, _ := c.resolve(p)
			sb.WriteString(text)
		}
		return sb.String(), true
	case "?":
		for _, p := range ls.Params {
			if text, ok := c.resolve(p); ok {
				return text, true
			}
		}
		return "", false
	}

	tmpl, ok := c.Lookup(ls.Key)
	if !ok {
		return fmt.Sprintf("Unknown key: %q", ls.Key), false
	}

	params := make([]string, len(ls.Params))
	for i, p := range ls.Params {
		params[i], _ = c.resolve(p)
	}
	return substitute(tmpl, params), true
}

// substitute replaces `__N__` with the N-th parameter. Placeholders without
// a matching parameter are left untouched.
func substitute(tmpl string, params []string) string {
	var sb strings.Builder
	for {
		start := strings.Index(tmpl, "__")
		if start < 0 {
			sb.WriteString(tmpl)
			return sb.String()
		}
		end := strings.Index(tmpl[start+2:], "__")
		if end < 0 {
			sb.WriteString(tmpl)
			return sb.String()
		}
		end += start + 2

		n, err := strconv.Atoi(tmpl[start+2 : end])
		if err != nil || n < 1 || n > len(params) {
			sb.WriteString(tmpl[:start+2])
			tmpl = tmpl[start+2:]
			continue
		}
		sb.WriteString(tmpl[:start])
		sb.WriteString(params[n-1])
		tmpl = tmpl[end+2:]
	}
}
