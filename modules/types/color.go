package types

import (
	"fmt"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// Color is an RGBA color. It reads either {r=, g=, b=, a=} with every
// component optional or a sequence of three or four numbers. Missing color
// components are 0 and a missing alpha is 1.
type Color struct {
	R, G, B, A float64
}

// White is the default tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

func (c *Color) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("color table", v)
	}
	*c = Color{A: 1}

	named := false
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"r", &c.R}, {"g", &c.G}, {"b", &c.B}, {"a", &c.A}} {
		fv, ok := t.Field(f.name)
		if !ok || fv.IsNil() {
			continue
		}
		n, isNum := fv.AsFloat()
		if !isNum {
			return fmt.Errorf("color component %q: %w", f.name, value.Mismatch("number", fv))
		}
		*f.dst = n
		named = true
	}
	if named {
		return nil
	}

	vals := t.Values()
	if !t.IsSequence() || len(vals) < 3 || len(vals) > 4 {
		return fmt.Errorf("color needs named components or 3 or 4 numbers, got %d values", t.Len())
	}
	dst := []*float64{&c.R, &c.G, &c.B, &c.A}
	for i, cv := range vals {
		n, isNum := cv.AsFloat()
		if !isNum {
			return fmt.Errorf("color component %d: %w", i+1, value.Mismatch("number", cv))
		}
		*dst[i] = n
	}
	return nil
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}
