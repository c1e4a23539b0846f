package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/locale"
	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/testutil"
	"github.com/specialistvlad/protocatalog/modules/entities"
	"github.com/specialistvlad/protocatalog/modules/items"
	"github.com/specialistvlad/protocatalog/modules/recipes"
)

const factoryData = `
prototype "item" "assembling-machine-1" {
  icon         = "__factory__/graphics/assembling-machine-1.png"
  icon_size    = 64
  stack_size   = 50
  place_result = "assembling-machine-1"
}

prototype "recipe" "assembling-machine-1" {
  energy_required = 0.5
  ingredients     = [["iron-plate", 9], ["iron-gear-wheel", 5]]
  result          = "assembling-machine-1"
}

prototype "assembling-machine" "assembling-machine-1" {
  icon                = "__factory__/graphics/assembling-machine-1.png"
  icon_size           = 64
  minable             = { mining_time = 0.2, result = "assembling-machine-1" }
  max_health          = 300
  collision_box       = [[-1.2, -1.2], [1.2, 1.2]]
  crafting_categories = ["crafting"]
  crafting_speed      = 0.5
  energy_usage        = "75kW"
  energy_source = {
    type           = "electric"
    usage_priority = "secondary-input"
  }
}
`

func factoryMod() testutil.Mod {
	return testutil.Mod{
		Name:         "factory",
		Version:      "0.3.1",
		Dependencies: []string{"base >= 1.0"},
		Scripts:      map[string]string{"data": factoryData},
		Locale: map[string]string{"en": `
			entity-name:
			  assembling-machine-1: Assembling machine 1
		`},
	}
}

// TestFactory_ReferencesAcrossMods verifies that prototypes of one mod may
// reference prototypes of another, including through an abstract kind.
func TestFactory_ReferencesAcrossMods(t *testing.T) {
	// --- Arrange & Act ---
	result := runIntegrationTest(t, harnessOptions{Language: "en"}, factoryMod(), testutil.BaseMod())

	// --- Assert ---
	require.NoError(t, result.Err, "the load should be clean:\n%s", result.Output)
	tbl := result.Load.Table
	assert.Equal(t, 9, tbl.Len())

	p, ok := tbl.Get(entities.KindAssemblingMachine, "assembling-machine-1")
	require.True(t, ok)
	machine := p.(*entities.AssemblingMachine)
	assert.InDelta(t, 75000.0, machine.EnergyUsage.Watts(), 1e-6)
	require.NotNil(t, machine.Minable)
	assert.Equal(t, "assembling-machine-1", machine.Minable.Results[0].Name)

	p, ok = tbl.Get(items.KindItem, "assembling-machine-1")
	require.True(t, ok)
	assert.Equal(t, "assembling-machine-1", p.(*items.Item).PlaceResult)

	entry, ok := tbl.Entry(recipes.KindRecipe, "assembling-machine-1")
	require.True(t, ok)
	assert.Equal(t, "factory", entry.Mod)
	assert.Equal(t, phase.Data, entry.Phase)

	name := result.Load.Locale.Resolve(locale.Keyed("entity-name.assembling-machine-1"))
	assert.Equal(t, "Assembling machine 1", name)
	assert.Contains(t, result.LogOutput, "Loaded mod locale.")
}

// TestFactory_BrokenUpgradeChain verifies that a reference to a prototype
// no mod defines is reported with its full path.
func TestFactory_BrokenUpgradeChain(t *testing.T) {
	// --- Arrange ---
	upgrade := testutil.Mod{
		Name:         "upgrades",
		Dependencies: []string{"factory"},
		Scripts: map[string]string{"data-updates": `
			extend "assembling-machine" "assembling-machine-1" {
			  fast_replaceable_group = "assembling-machine"
			  next_upgrade           = "assembling-machine-2"
			}
		`},
	}

	// --- Act ---
	result := runIntegrationTest(t, harnessOptions{}, testutil.BaseMod(), factoryMod(), upgrade)

	// --- Assert ---
	require.Error(t, result.Err)
	broken := result.Load.Report.BrokenReferences
	require.Len(t, broken, 1)
	assert.Equal(t, entities.KindAssemblingMachine, broken[0].FromKind)
	assert.Equal(t, "assembling-machine-1", broken[0].FromName)
	assert.Equal(t, "next_upgrade", broken[0].Path.String())
	assert.Equal(t, "assembling-machine-2", broken[0].TargetName)
	assert.Contains(t, result.Output, "Problems: 1")

	require.Len(t, result.Load.Report.Overrides, 1)
	assert.Equal(t, "upgrades", result.Load.Report.Overrides[0].Mod)
}

// TestFactory_PolicyFreezesFinalFixes verifies that a per-phase policy
// refuses overrides while earlier phases may still replace prototypes.
func TestFactory_PolicyFreezesFinalFixes(t *testing.T) {
	// --- Arrange ---
	tweaks := testutil.Mod{
		Name: "tweaks",
		Scripts: map[string]string{
			"data-updates": `
				extend "recipe" "iron-gear-wheel" {
				  energy_required = 1
				}
			`,
			"data-final-fixes": `
				extend "recipe" "iron-gear-wheel" {
				  energy_required = 10
				}
			`,
		},
	}
	policy := `
		phase "data-final-fixes" {
		  allow_override = false
		}
	`

	// --- Act ---
	result := runIntegrationTest(t, harnessOptions{Policy: policy}, testutil.BaseMod(), tweaks)

	// --- Assert ---
	require.Error(t, result.Err)
	report := result.Load.Report
	require.Len(t, report.InsertErrors, 1)
	assert.ErrorIs(t, report.InsertErrors[0], datatable.ErrOverrideNotAllowed)

	entry, ok := result.Load.Table.Entry(recipes.KindRecipe, "iron-gear-wheel")
	require.True(t, ok)
	assert.Equal(t, "tweaks", entry.Mod)
	assert.Equal(t, phase.Updates, entry.Phase)
	assert.Equal(t, 1.0, entry.Prototype.(*recipes.Recipe).EnergyRequired)
}

// TestFactory_SettingsAndBaseLocale verifies that startup settings reach
// scripts and that mod locales extend the base locale.
func TestFactory_SettingsAndBaseLocale(t *testing.T) {
	// --- Arrange ---
	tuned := testutil.Mod{
		Name: "tuned",
		Scripts: map[string]string{"data-updates": `
			extend "assembling-machine" "assembling-machine-1" {
			  crafting_speed = settings["machine-speed"]
			}
		`},
		Dependencies: []string{"factory"},
	}

	// --- Act ---
	result := runIntegrationTest(t,
		harnessOptions{
			Language: "en",
			Locale: `
				item-name:
				  iron-plate: Iron plate
			`,
			Settings: map[string]string{"machine-speed": "0.75"},
		},
		testutil.BaseMod(), factoryMod(), tuned,
	)

	// --- Assert ---
	require.NoError(t, result.Err, result.Output)
	p, ok := result.Load.Table.Get(entities.KindAssemblingMachine, "assembling-machine-1")
	require.True(t, ok)
	assert.Equal(t, 0.75, p.(*entities.AssemblingMachine).CraftingSpeed)

	catalog := result.Load.Locale
	assert.Equal(t, "Iron plate", catalog.Resolve(locale.Keyed("item-name.iron-plate")))
	assert.Equal(t, "Assembling machine 1", catalog.Resolve(locale.Keyed("entity-name.assembling-machine-1")))
}
