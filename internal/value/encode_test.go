// internal/value/encode_test.go
package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValue_Interface(t *testing.T) {
	testCases := []struct {
		name string
		in   Value
		want any
	}{
		{"nil", Nil(), nil},
		{"bool", Bool(true), true},
		{"int", Int(3), int64(3)},
		{"string", String("gear"), "gear"},
		{"empty table", TableOf(NewTable()), map[string]any{}},
		{"sequence", TableOf(Sequence(Int(1), String("a"))), []any{int64(1), "a"}},
		{
			"mixed keys",
			TableOf(NewTable().Append(Int(1)).SetField("name", String("x"))),
			map[string]any{"1": int64(1), "name": "x"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Interface())
		})
	}
}

func TestValue_MarshalYAMLKeepsOrder(t *testing.T) {
	tbl := NewTable().
		SetField("name", String("gear")).
		SetField("count", Int(2)).
		SetField("ratio", Float(0.5)).
		SetField("enabled", Bool(true))

	out, err := yaml.Marshal(TableOf(tbl))
	require.NoError(t, err)
	assert.Equal(t, "name: gear\ncount: 2\nratio: 0.5\nenabled: true\n", string(out))
}

func TestValue_MarshalJSON(t *testing.T) {
	tbl := NewTable().
		SetField("name", String("gear")).
		SetField("results", TableOf(Sequence(Int(1), Int(2))))

	out, err := json.Marshal(TableOf(tbl))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"gear","results":[1,2]}`, string(out))
}
