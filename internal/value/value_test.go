// internal/value/value_test.go
package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestValue_Accessors(t *testing.T) {
	i, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	i, ok = Float(2.0).AsInt()
	assert.True(t, ok, "integral float converts")
	assert.Equal(t, int64(2), i)

	_, ok = Float(2.5).AsInt()
	assert.False(t, ok)

	f, ok := Int(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = String("3").AsFloat()
	assert.False(t, ok)

	assert.True(t, Value{}.IsNil())
	assert.True(t, TableOf(nil).IsNil())
	assert.Equal(t, `string "iron-plate"`, String("iron-plate").Describe())
	assert.Equal(t, "integer 42", Int(42).Describe())
	assert.Equal(t, "table", TableOf(NewTable()).Describe())
}

func TestTable_Sequence(t *testing.T) {
	testCases := []struct {
		name     string
		table    *Table
		expected bool
	}{
		{"empty", NewTable(), true},
		{"array", Sequence(String("a"), String("b")), true},
		{"record", NewTable().SetField("a", Int(1)), false},
		{"gap", NewTable().Set(IntKey(1), Int(1)).Set(IntKey(3), Int(3)), false},
		{"out of order", NewTable().Set(IntKey(2), Int(1)).Set(IntKey(1), Int(3)), false},
		{"mixed", Sequence(Int(1)).SetField("name", String("x")), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.table.IsSequence())
		})
	}
}

func TestTable_PreservesOrderAndDuplicates(t *testing.T) {
	tbl := NewTable().
		SetField("b", Int(1)).
		SetField("a", Int(2)).
		SetField("b", Int(3))

	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "b", tbl.Entries()[0].Key.String())
	assert.Equal(t, "a", tbl.Entries()[1].Key.String())

	v, ok := tbl.Field("b")
	require.True(t, ok)
	assert.Equal(t, Int(1), v, "lookup returns the first pair")

	dup, ok := tbl.FirstDuplicate()
	require.True(t, ok)
	assert.Equal(t, StringKey("b"), dup)
}

func TestTable_Put(t *testing.T) {
	tbl := NewTable().SetField("a", Int(1)).SetField("b", Int(2))
	tbl.Put(StringKey("a"), Int(10))
	tbl.Put(StringKey("c"), Int(3))

	require.Equal(t, 3, tbl.Len())
	v, _ := tbl.Field("a")
	assert.Equal(t, Int(10), v)
	assert.Equal(t, "c", tbl.Entries()[2].Key.String())
}

func TestTable_Delete(t *testing.T) {
	tbl := NewTable().SetField("a", Int(1)).SetField("b", Int(2)).SetField("a", Int(3))

	assert.True(t, tbl.Delete(StringKey("a")))
	assert.False(t, tbl.Delete(StringKey("a")))
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "b", tbl.Entries()[0].Key.String())
}

func TestTable_Clone(t *testing.T) {
	inner := NewTable().SetField("x", Int(1))
	outer := NewTable().SetField("inner", TableOf(inner))

	clone := outer.Clone()
	inner.Put(StringKey("x"), Int(99))

	sub, _ := clone.Field("inner")
	st, ok := sub.AsTable()
	require.True(t, ok)
	x, _ := st.Field("x")
	assert.Equal(t, Int(1), x)
}

func TestCty_RoundTrip(t *testing.T) {
	in := cty.ObjectVal(map[string]cty.Value{
		"name":            cty.StringVal("iron-gear-wheel"),
		"energy_required": cty.NumberFloatVal(0.5),
		"enabled":         cty.True,
		"result_count":    cty.NumberIntVal(1),
		"ingredients": cty.TupleVal([]cty.Value{
			cty.TupleVal([]cty.Value{cty.StringVal("iron-plate"), cty.NumberIntVal(2)}),
		}),
		"nothing": cty.NullVal(cty.String),
	})

	v, err := FromCty(in)
	require.NoError(t, err)
	tbl, ok := v.AsTable()
	require.True(t, ok)

	count, _ := tbl.Field("result_count")
	assert.Equal(t, KindInteger, count.Kind())
	energy, _ := tbl.Field("energy_required")
	assert.Equal(t, KindFloat, energy.Kind())
	nothing, present := tbl.Field("nothing")
	assert.True(t, present)
	assert.True(t, nothing.IsNil())

	ings, _ := tbl.Field("ingredients")
	it, _ := ings.AsTable()
	assert.True(t, it.IsSequence())

	back := ToCty(v)
	assert.True(t, back.GetAttr("name").RawEquals(cty.StringVal("iron-gear-wheel")))
	assert.Equal(t, 1, back.GetAttr("ingredients").LengthInt())
}

func TestFromCty_Unknown(t *testing.T) {
	_, err := FromCty(cty.UnknownVal(cty.String))
	assert.Error(t, err)
}
