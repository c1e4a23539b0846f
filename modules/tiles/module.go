// Package tiles registers the tile kind.
package tiles

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// KindTile is the kind registered by this package.
const KindTile prototype.Kind = "tile"

// TileFields is the layer of tile.
type TileFields struct {
	types.IconSpecification
	CollisionMask                []string                 `proto:"collision_mask,required"`
	Layer                        uint8                    `proto:"layer,required"`
	Variants                     value.Value              `proto:"variants,required"`
	MapColor                     types.Color              `proto:"map_color,required"`
	PollutionAbsorptionPerSecond float64                  `proto:"pollution_absorption_per_second,required"`
	WalkingSpeedModifier         float64                  `proto:"walking_speed_modifier,default=1"`
	VehicleFrictionModifier      float64                  `proto:"vehicle_friction_modifier,default=1"`
	DecorativeRemovalProbability float32                  `proto:"decorative_removal_probability"`
	Minable                      *types.MinableProperties `proto:"minable"`
	NextDirection                string                   `proto:"next_direction,ref=tile"`
	TransitionMergesWithTile     string                   `proto:"transition_merges_with_tile,ref=tile"`
	Autoplace                    value.Value              `proto:"autoplace"`
	CanBePartOfBlueprint         bool                     `proto:"can_be_part_of_blueprint,default=true"`
	NeedsCorrection              bool                     `proto:"needs_correction"`
	WalkingSound                 []types.SoundFile        `proto:"walking_sound,single"`
}

func (f *TileFields) PostConvert(*convert.Context) error {
	if len(f.CollisionMask) == 0 {
		return convert.Invalid("collision_mask", "must name at least one layer")
	}
	if f.DecorativeRemovalProbability < 0 || f.DecorativeRemovalProbability > 1 {
		return convert.Invalid("decorative_removal_probability", "must be in a range of [0; 1], got %g", f.DecorativeRemovalProbability)
	}
	if f.HasIcon() {
		return f.CheckIcon()
	}
	return nil
}

// Tile is a ground tile.
type Tile struct {
	prototype.PrototypeBase
	TileFields
}

// Register registers the tile kind.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindTile, Parent: prototype.RootKind, Layer: TileFields{}, New: func() prototype.Prototype { return &Tile{} }})
}
