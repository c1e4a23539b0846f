package recipes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/testutil"
	"github.com/specialistvlad/protocatalog/internal/validate"
	"github.com/specialistvlad/protocatalog/modules/modulestest"
	"github.com/specialistvlad/protocatalog/modules/recipes"
	"github.com/specialistvlad/protocatalog/modules/types"
)

func TestRecipe_Defaults(t *testing.T) {
	r := modulestest.MustConvert[*recipes.Recipe](t, `
		prototype "recipe" "iron-gear-wheel" {
		  ingredients = [["iron-plate", 2]]
		  result      = "iron-gear-wheel"
		}
	`)

	assert.Equal(t, "iron-gear-wheel", r.Name())
	assert.Equal(t, recipes.HandCraftingCategory, r.Category)
	assert.Equal(t, 0.5, r.EnergyRequired)
	assert.True(t, r.Enabled)
	assert.True(t, r.AllowDecomposition)
	assert.Equal(t, uint32(30), r.RequesterPasteMultiplier)
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, types.Ingredient{Type: types.ItemType, Name: "iron-plate", Amount: 2}, r.Ingredients[0])
	require.Len(t, r.Results, 1)
	assert.Equal(t, "iron-gear-wheel", r.Results[0].Name)
	require.NotNil(t, r.Results[0].Amount)
	assert.Equal(t, 1.0, *r.Results[0].Amount)
}

func TestRecipe_ResultCountFoldsIntoResults(t *testing.T) {
	r := modulestest.MustConvert[*recipes.Recipe](t, `
		prototype "recipe" "copper-cable" {
		  ingredients  = [["copper-plate", 1]]
		  result       = "copper-cable"
		  result_count = 2
		}
	`)
	require.Len(t, r.Results, 1)
	assert.Equal(t, 2.0, *r.Results[0].Amount)
}

func TestRecipe_MissingResultIsReportedOnce(t *testing.T) {
	// --- Arrange ---
	r := modulestest.MustConvert[*recipes.Recipe](t, `
		prototype "recipe" "copper-cable" {
		  ingredients = []
		  result      = "copper-cable"
		}
	`)
	tbl := datatable.New()
	_, err := tbl.Insert(recipes.KindRecipe, r.Name(), r)
	require.NoError(t, err)
	tbl.Freeze()

	// --- Act ---
	broken, err := validate.New(modulestest.Registry(t)).ValidateAll(testutil.Context(t), tbl)

	// --- Assert ---
	require.NoError(t, err)
	var paths []string
	for _, b := range broken {
		if b.TargetName == "copper-cable" {
			paths = append(paths, b.Path.String())
		}
	}
	assert.Equal(t, []string{"results[1].name"}, paths)
}

func TestRecipe_Rules(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason convert.Reason
		field  string
	}{
		{
			name: "no result",
			src: `prototype "recipe" "x" {
  ingredients = [["iron-plate", 1]]
}`,
			reason: convert.MissingRequiredField,
			field:  "result",
		},
		{
			name: "non-positive energy",
			src: `prototype "recipe" "x" {
  energy_required = 0
  ingredients     = [["iron-plate", 1]]
  result          = "x"
}`,
			reason: convert.NestedConversionFailure,
			field:  "energy_required",
		},
		{
			name: "fluid in hand crafting",
			src: `prototype "recipe" "x" {
  ingredients = [{ type = "fluid", name = "water", amount = 10 }]
  result      = "x"
}`,
			reason: convert.NestedConversionFailure,
			field:  "ingredients",
		},
		{
			name: "unknown main product",
			src: `prototype "recipe" "x" {
  ingredients  = [["iron-plate", 1]]
  result       = "x"
  main_product = "y"
}`,
			reason: convert.NestedConversionFailure,
			field:  "main_product",
		},
		{
			name: "several results without icon",
			src: `prototype "recipe" "x" {
  category    = "chemistry"
  ingredients = [["iron-plate", 1]]
  results     = [["a", 1], ["b", 1]]
}`,
			reason: convert.MissingRequiredField,
			field:  "icon",
		},
		{
			name: "ingredient without amount",
			src: `prototype "recipe" "x" {
  ingredients = [{ name = "iron-plate" }]
  result      = "x"
}`,
			reason: convert.MissingRequiredField,
			field:  "ingredients[1].amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := modulestest.Convert(t, tt.src)
			ce := modulestest.RequireError(t, err, tt.reason, tt.field)
			assert.Equal(t, "x", ce.Name)
		})
	}
}

func TestRecipe_FluidsOutsideHandCrafting(t *testing.T) {
	r := modulestest.MustConvert[*recipes.Recipe](t, `
		prototype "recipe" "sulfuric-acid" {
		  category     = "chemistry"
		  icon         = "__base__/graphics/icons/fluid/sulfuric-acid.png"
		  icon_size    = 64
		  ingredients  = [{ type = "fluid", name = "water", amount = 100 }, ["sulfur", 5]]
		  results      = [{ type = "fluid", name = "sulfuric-acid", amount = 50 }]
		  main_product = "sulfuric-acid"
		}
	`)
	require.Len(t, r.Ingredients, 2)
	assert.True(t, r.Ingredients[0].IsFluid())
	assert.Equal(t, types.FluidType, r.Results[0].Type)
}

func TestTechnology(t *testing.T) {
	tech := modulestest.MustConvert[*recipes.Technology](t, `
		prototype "technology" "automation" {
		  icon      = "__base__/graphics/technology/automation.png"
		  icon_size = 256
		  unit = {
		    count       = 10
		    time        = 10
		    ingredients = [["automation-science-pack", 1]]
		  }
		  effects = [
		    { type = "unlock-recipe", recipe = "assembling-machine-1" },
		    { type = "unlock-recipe", recipe = "long-handed-inserter" },
		  ]
		}
	`)
	require.NotNil(t, tech.Unit.Count)
	assert.Equal(t, uint64(10), *tech.Unit.Count)
	assert.Equal(t, []string{"assembling-machine-1", "long-handed-inserter"}, tech.UnlockedRecipes())
	assert.False(t, tech.Infinite())
	assert.True(t, tech.Enabled)
}

func TestTechnology_Rules(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "count and formula",
			body:  `unit = { count = 1, count_formula = "2^L", time = 30, ingredients = [["automation-science-pack", 1]] }`,
			field: "unit.count_formula",
		},
		{
			name: "unlock without recipe",
			body: `unit = { count = 1, time = 30, ingredients = [["automation-science-pack", 1]] }
effects = [{ type = "unlock-recipe" }]`,
			field: "effects[1].recipe",
		},
		{
			name: "bad max level",
			body: `unit = { count_formula = "2^L", time = 30, ingredients = [["automation-science-pack", 1]] }
max_level = "forever"`,
			field: "max_level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "prototype \"technology\" \"t\" {\nicon = \"t.png\"\nicon_size = 64\n" + tt.body + "\n}\n"
			_, err := modulestest.Convert(t, src)
			require.Error(t, err)
			var ce *convert.ConversionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field(), "error: %v", err)
		})
	}
}
