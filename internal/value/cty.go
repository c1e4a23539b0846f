// internal/value/cty.go
package value

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts an evaluated HCL value into a Value. Objects and maps
// become string-keyed tables in attribute name order, while lists, tuples
// and sets become sequences. Whole numbers that fit in int64 become integers.
func FromCty(v cty.Value) (Value, error) {
	v, _ = v.UnmarkDeep()
	if !v.IsKnown() {
		return Nil(), fmt.Errorf("value is not known")
	}
	if v.IsNull() {
		return Nil(), nil
	}

	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return Bool(v.True()), nil
	case ty == cty.Number:
		return fromNumber(v.AsBigFloat()), nil
	case ty == cty.String:
		return String(v.AsString()), nil
	case ty.IsObjectType() || ty.IsMapType():
		t := NewTable()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			sub, err := FromCty(ev)
			if err != nil {
				return Nil(), fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			t.SetField(k.AsString(), sub)
		}
		return TableOf(t), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		t := NewTable()
		i := 0
		for it := v.ElementIterator(); it.Next(); {
			i++
			_, ev := it.Element()
			sub, err := FromCty(ev)
			if err != nil {
				return Nil(), fmt.Errorf("in element %d: %w", i, err)
			}
			t.Append(sub)
		}
		return TableOf(t), nil
	default:
		return Nil(), fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

func fromNumber(bf *big.Float) Value {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return Int(i)
		}
	}
	f, _ := bf.Float64()
	return Float(f)
}

// ToCty converts a Value into a cty value for use inside HCL expressions.
// Non-empty sequences become tuples and every other table becomes an object;
// integer keys of a mixed table are rendered as strings. When a key repeats
// the last pair wins.
func ToCty(v Value) cty.Value {
	switch v.Kind() {
	case KindBool:
		return cty.BoolVal(v.b)
	case KindInteger:
		return cty.NumberIntVal(v.i)
	case KindFloat:
		return cty.NumberFloatVal(v.f)
	case KindString:
		return cty.StringVal(v.s)
	case KindTable:
		return tableToCty(v.t)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func tableToCty(t *Table) cty.Value {
	if t.Len() == 0 {
		return cty.EmptyObjectVal
	}
	if t.IsSequence() {
		elems := make([]cty.Value, 0, t.Len())
		for _, e := range t.Entries() {
			elems = append(elems, ToCty(e.Value))
		}
		return cty.TupleVal(elems)
	}
	attrs := make(map[string]cty.Value, t.Len())
	for _, e := range t.Entries() {
		name := e.Key.s
		if e.Key.isInt {
			name = strconv.FormatInt(e.Key.i, 10)
		}
		attrs[name] = ToCty(e.Value)
	}
	return cty.ObjectVal(attrs)
}
