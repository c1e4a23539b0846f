package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/modules/entities"
	"github.com/specialistvlad/protocatalog/modules/modulestest"
	"github.com/specialistvlad/protocatalog/modules/types"
)

const assembler = `
prototype "assembling-machine" "assembling-machine-1" {
  icon                = "assembling-machine-1.png"
  icon_size           = 64
  flags               = ["placeable-neutral", "player-creation"]
  minable             = { mining_time = 0.2, result = "assembling-machine-1" }
  max_health          = 300
  collision_box       = [[-1.2, -1.2], [1.2, 1.2]]
  selection_box       = [[-1.5, -1.5], [1.5, 1.5]]
  fast_replaceable_group = "assembling-machine"
  next_upgrade        = "assembling-machine-2"
  crafting_categories = ["crafting", "basic-crafting", "advanced-crafting"]
  crafting_speed      = 0.5
  energy_source = {
    type                 = "electric"
    usage_priority       = "secondary-input"
    emissions_per_minute = 4
  }
  energy_usage = "75kW"
  resistances  = [{ type = "fire", percent = 70 }]
}
`

func TestAssemblingMachine(t *testing.T) {
	m := modulestest.MustConvert[*entities.AssemblingMachine](t, assembler)

	assert.Equal(t, float32(300), m.MaxHealth)
	assert.Equal(t, uint32(3), m.TileWidth)
	assert.Equal(t, uint32(3), m.TileHeight)
	assert.Equal(t, uint8(255), m.IngredientCount)
	assert.Equal(t, types.ElectricSource, m.EnergySource.Type)
	assert.InDelta(t, 75000.0, m.EnergyUsage.Watts(), 1e-6)
	assert.True(t, m.Crafts("advanced-crafting"))
	assert.False(t, m.Crafts("smelting"))
	assert.True(t, m.CreateGhostOnDeath)
	assert.Equal(t, "automatic", m.RemoveDecoratives)

	var e entities.Entity = m
	assert.Equal(t, "assembling-machine-2", e.Base().NextUpgrade)
}

func TestFurnace_BurnerDefaults(t *testing.T) {
	f := modulestest.MustConvert[*entities.Furnace](t, `
		prototype "furnace" "stone-furnace" {
		  icon                  = "stone-furnace.png"
		  icon_size             = 64
		  crafting_categories   = ["smelting"]
		  crafting_speed        = 1
		  energy_usage          = "90kW"
		  result_inventory_size = 1
		  source_inventory_size = 1
		  energy_source = {
		    type                = "burner"
		    fuel_inventory_size = 1
		  }
		}
	`)
	assert.Equal(t, []string{types.DefaultFuelCategory}, f.EnergySource.FuelCategories)
	assert.Equal(t, 1.0, f.EnergySource.Effectivity)
	assert.Equal(t, float32(10), f.MaxHealth)
}

func TestOffshorePump_FluidBox(t *testing.T) {
	p := modulestest.MustConvert[*entities.OffshorePump](t, `
		prototype "offshore-pump" "offshore-pump" {
		  fluid         = "water"
		  pumping_speed = 20
		  fluid_box = {
		    base_area        = 1
		    production_type  = "output"
		    pipe_connections = [{ position = [0, 1] }]
		  }
		}
	`)
	require.Len(t, p.FluidBox.PipeConnections, 1)
	conn := p.FluidBox.PipeConnections[0]
	assert.Len(t, conn.Positions, 4)
	assert.Equal(t, "input-output", conn.Type)
	assert.Equal(t, "output", p.FluidBox.ProductionType)
}

func TestEntities_Rules(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason convert.Reason
		field  string
	}{
		{
			name: "upgrade without replace group",
			src: `prototype "container" "chest" {
  inventory_size = 16
  next_upgrade   = "iron-chest"
}`,
			reason: convert.MissingRequiredField,
			field:  "fast_replaceable_group",
		},
		{
			name: "duplicate resistance",
			src: `prototype "container" "chest" {
  inventory_size = 16
  resistances    = [{ type = "fire" }, { type = "fire", percent = 10 }]
}`,
			reason: convert.NestedConversionFailure,
			field:  "resistances",
		},
		{
			name: "electric source without priority",
			src: `prototype "inserter" "inserter" {
  extension_speed = 0.03
  rotation_speed  = 0.014
  insert_position = [0, 1.2]
  pickup_position = [0, -1]
  energy_source   = { type = "electric" }
}`,
			reason: convert.MissingRequiredField,
			field:  "energy_source.usage_priority",
		},
		{
			name: "pipe connection without position",
			src: `prototype "pipe" "pipe" {
  pictures  = {}
  fluid_box = { pipe_connections = [{ type = "input" }] }
}`,
			reason: convert.MissingRequiredField,
			field:  "fluid_box.pipe_connections[1].position",
		},
		{
			name: "resource without minable",
			src: `prototype "resource" "iron-ore" {
  stages       = {}
  stage_counts = [15000, 9500, 5500]
}`,
			reason: convert.MissingRequiredField,
			field:  "minable",
		},
		{
			name: "belt without speed",
			src: `prototype "transport-belt" "belt" {
  speed = 0
}`,
			reason: convert.NestedConversionFailure,
			field:  "speed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := modulestest.Convert(t, tt.src)
			modulestest.RequireError(t, err, tt.reason, tt.field)
		})
	}
}

func TestTransportBelt_Throughput(t *testing.T) {
	b := modulestest.MustConvert[*entities.TransportBelt](t, `
		prototype "transport-belt" "transport-belt" {
		  speed = 0.03125
		}
	`)
	assert.InDelta(t, 15.0, b.ItemsPerSecond(), 1e-9)
	assert.Equal(t, 1.0, b.AnimationSpeedCoefficient)
}

func TestTreeAndRock(t *testing.T) {
	tree := modulestest.MustConvert[*entities.Tree](t, `
		prototype "tree" "tree-01" {
		  pictures             = [{ filename = "tree.png", size = 64 }]
		  emissions_per_second = -0.001
		  minable              = { mining_time = 0.55, result = "wood", count = 4 }
		}
	`)
	assert.Equal(t, float32(0.5), tree.DarknessOfBurntTree)
	require.NotNil(t, tree.Minable)
	assert.Equal(t, 4.0, *tree.Minable.Results[0].Amount)

	_, err := modulestest.Convert(t, `
		prototype "simple-entity" "rock-big" {
		  max_health = 500
		}
	`)
	modulestest.RequireError(t, err, convert.MissingRequiredField, "picture")
}
