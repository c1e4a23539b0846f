package items_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/modules/items"
	"github.com/specialistvlad/protocatalog/modules/modulestest"
	"github.com/specialistvlad/protocatalog/modules/types"
)

func TestItem_Defaults(t *testing.T) {
	it := modulestest.MustConvert[*items.Item](t, `
		prototype "item" "iron-plate" {
		  icon       = "__base__/graphics/icons/iron-plate.png"
		  icon_size  = 64
		  stack_size = 100
		}
	`)

	assert.Equal(t, uint32(100), it.StackSize)
	assert.Equal(t, "other", it.Subgroup)
	assert.Equal(t, 1.0, it.FuelAccelerationMultiplier)
	require.NotNil(t, it.DefaultRequestAmount)
	assert.Equal(t, uint32(100), *it.DefaultRequestAmount)
}

func TestItem_Fuel(t *testing.T) {
	it := modulestest.MustConvert[*items.Item](t, `
		prototype "item" "coal" {
		  icon          = "coal.png"
		  icon_size     = 64
		  stack_size    = 50
		  fuel_category = "chemical"
		  fuel_value    = "4MJ"
		}
	`)
	assert.Equal(t, types.Energy(4e6), it.FuelValue)
}

func TestItem_Rules(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason convert.Reason
		field  string
	}{
		{name: "no icon", body: `stack_size = 1`, reason: convert.MissingRequiredField, field: "icon"},
		{name: "no stack size", body: `icon = "x.png"`, reason: convert.MissingRequiredField, field: "stack_size"},
		{name: "zero stack size", body: "icon = \"x.png\"\nicon_size = 32\nstack_size = 0", reason: convert.NestedConversionFailure, field: "stack_size"},
		{name: "fuel without category", body: "icon = \"x.png\"\nicon_size = 32\nstack_size = 1\nfuel_value = \"1MJ\"", reason: convert.MissingRequiredField, field: "fuel_category"},
		{name: "stacked not-stackable", body: "icon = \"x.png\"\nicon_size = 32\nstack_size = 5\nflags = [\"not-stackable\"]", reason: convert.NestedConversionFailure, field: "stack_size"},
		{name: "unknown flag", body: "icon = \"x.png\"\nicon_size = 32\nstack_size = 5\nflags = [\"shiny\"]", reason: convert.UnknownEnumVariant, field: "flags[1]"},
		{name: "bad energy", body: "icon = \"x.png\"\nicon_size = 32\nstack_size = 5\nfuel_value = \"lots\"", reason: convert.NestedConversionFailure, field: "fuel_value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := modulestest.Convert(t, "prototype \"item\" \"x\" {\n"+tt.body+"\n}\n")
			modulestest.RequireError(t, err, tt.reason, tt.field)
		})
	}
}

func TestGun(t *testing.T) {
	gun := modulestest.MustConvert[*items.Gun](t, `
		prototype "gun" "pistol" {
		  icon       = "pistol.png"
		  icon_size  = 64
		  stack_size = 5
		  attack_parameters = {
		    type          = "projectile"
		    ammo_category = "bullet"
		    cooldown      = 15
		    range         = 15
		  }
		}
	`)
	assert.Equal(t, "bullet", gun.AttackParameters.AmmoCategory)
	assert.Equal(t, float32(1), gun.AttackParameters.DamageModifier)

	_, err := modulestest.Convert(t, `
		prototype "gun" "pistol" {
		  icon       = "pistol.png"
		  icon_size  = 64
		  stack_size = 5
		  attack_parameters = { type = "projectile", cooldown = 15, range = 15 }
		}
	`)
	modulestest.RequireError(t, err, convert.MissingRequiredField, "attack_parameters.ammo_category")
}

func TestModule_Effects(t *testing.T) {
	m := modulestest.MustConvert[*items.ModuleItem](t, `
		prototype "module" "speed-module" {
		  icon       = "speed-module.png"
		  icon_size  = 64
		  stack_size = 50
		  category   = "speed"
		  tier       = 1
		  effect     = { speed = { bonus = 0.2 }, consumption = { bonus = 0.5 } }
		}
	`)
	assert.Equal(t, map[string]items.Effect{"speed": {Bonus: 0.2}, "consumption": {Bonus: 0.5}}, m.Effect)

	_, err := modulestest.Convert(t, `
		prototype "module" "m" {
		  icon       = "m.png"
		  icon_size  = 64
		  stack_size = 50
		  category   = "speed"
		  tier       = 1
		  effect     = { warp = { bonus = 1 } }
		}
	`)
	ce := modulestest.RequireError(t, err, convert.UnknownEnumVariant, "effect")
	assert.Equal(t, "warp", ce.Variant)
}

func TestTool_DurabilityDisablesInfinite(t *testing.T) {
	pack := modulestest.MustConvert[*items.Tool](t, `
		prototype "tool" "automation-science-pack" {
		  icon       = "red.png"
		  icon_size  = 64
		  stack_size = 200
		  durability = 1
		}
	`)
	assert.False(t, pack.Infinite)
	assert.Equal(t, "description.science-pack-remaining-amount-key", pack.DurabilityDescriptionKey)
}

func TestArmor_InheritsTool(t *testing.T) {
	armor := modulestest.MustConvert[*items.Armor](t, `
		prototype "armor" "light-armor" {
		  icon       = "light-armor.png"
		  icon_size  = 64
		  stack_size = 1
		  flags      = ["not-stackable"]
		  resistances = [
		    { type = "physical", decrease = 3, percent = 20 },
		  ]
		}
	`)
	assert.True(t, armor.Infinite)
	require.Len(t, armor.Resistances, 1)
	assert.Equal(t, "physical", armor.Resistances[0].Type)
}
