package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/export"
	"github.com/specialistvlad/protocatalog/modules/modulestest"
	"github.com/specialistvlad/protocatalog/modules/recipes"
)

const gearRecipe = `
	prototype "recipe" "iron-gear-wheel" {
	  ingredients = [["iron-plate", 2]]
	  result      = "iron-gear-wheel"
	}
`

func TestYAML(t *testing.T) {
	reg := modulestest.Registry(t)
	r := modulestest.MustConvert[*recipes.Recipe](t, gearRecipe)

	var buf bytes.Buffer
	require.NoError(t, export.YAML(&buf, reg, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "type: recipe\nname: iron-gear-wheel\n"), out)
	assert.Contains(t, out, "category: crafting\n")
	assert.Contains(t, out, "energy_required: 0.5\n")
	assert.Contains(t, out, "ingredients:\n  - type: item\n    name: iron-plate\n    amount: 2\n")
	assert.NotContains(t, out, "localised_name", "unset optional fields are omitted")
	assert.Less(t, strings.Index(out, "category:"), strings.Index(out, "ingredients:"), "field order follows the layer")
}

func TestJSON(t *testing.T) {
	reg := modulestest.Registry(t)
	r := modulestest.MustConvert[*recipes.Recipe](t, gearRecipe)

	var buf bytes.Buffer
	require.NoError(t, export.JSON(&buf, reg, r))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc), buf.String())
	assert.Equal(t, "recipe", doc["type"])
	assert.Equal(t, "iron-gear-wheel", doc["name"])
	assert.Equal(t, 0.5, doc["energy_required"])
	assert.Equal(t, true, doc["enabled"])

	results, ok := doc["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, "iron-gear-wheel", results[0].(map[string]any)["name"])
}

func TestRawHCL_RoundTrip(t *testing.T) {
	raw := modulestest.Execute(t, gearRecipe+`
		prototype "item" "iron-plate" {
		  icon       = "__base__/graphics/icons/iron-plate.png"
		  icon_size  = 64
		  stack_size = 100
		  flags      = ["goes-to-main-inventory"]
		  fuel       = { value = "4MJ", category = "chemical" }
		}
	`)
	tbl, ok := raw.AsTable()
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, export.RawHCL(&buf, tbl))
	out := buf.String()
	assert.Contains(t, out, `prototype "recipe" "iron-gear-wheel" {`)
	assert.Contains(t, out, `prototype "item" "iron-plate" {`)
	assert.NotContains(t, out, "type ", "identity is carried by the labels")

	again := modulestest.Execute(t, out)
	assert.Equal(t, raw.Interface(), again.Interface())
}
