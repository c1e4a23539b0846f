package entities

import (
	"math"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// EntityFields is the layer every entity kind shares.
type EntityFields struct {
	types.IconSpecification
	CollisionBox         *types.BoundingBox       `proto:"collision_box"`
	SelectionBox         *types.BoundingBox       `proto:"selection_box"`
	CollisionMask        []string                 `proto:"collision_mask"`
	Flags                []string                 `proto:"flags,oneof=not-rotatable|placeable-neutral|placeable-player|placeable-enemy|placeable-off-grid|player-creation|building-direction-8-way|filter-directions|fast-replaceable-no-build-while-moving|breaths-air|not-repairable|not-on-map|not-deconstructable|not-blueprintable|hidden|hide-alt-info|fast-replaceable-no-cross-type-while-moving|no-gap-fill-while-building|not-flammable|no-automated-item-removal|no-automated-item-insertion|no-copy-paste|not-selectable-in-game|not-upgradable|not-in-kill-statistics|not-in-made-in"`
	Minable              *types.MinableProperties `proto:"minable"`
	Subgroup             string                   `proto:"subgroup,ref=item-subgroup"`
	PlaceableBy          []ItemToPlace            `proto:"placeable_by,single"`
	FastReplaceableGroup string                   `proto:"fast_replaceable_group"`
	NextUpgrade          string                   `proto:"next_upgrade,ref=entity"`
	MapColor             *types.Color             `proto:"map_color"`
	TileWidth            uint32                   `proto:"tile_width"`
	TileHeight           uint32                   `proto:"tile_height"`
	RemoveDecoratives    string                   `proto:"remove_decoratives,default=automatic,oneof=automatic|true|false"`
	WorkingSound         *types.WorkingSound      `proto:"working_sound"`
	BuildSound           *types.Sound             `proto:"build_sound"`
	MinedSound           *types.Sound             `proto:"mined_sound"`
	AlertWhenDamaged     bool                     `proto:"alert_when_damaged,default=true"`
}

// ItemToPlace names an item that builds the entity.
type ItemToPlace struct {
	Item  string `proto:"item,required,ref=item"`
	Count uint32 `proto:"count,required"`
}

func (f *EntityFields) PostConvert(*convert.Context) error {
	if f.HasIcon() {
		if err := f.CheckIcon(); err != nil {
			return err
		}
	}
	if f.NextUpgrade != "" && f.FastReplaceableGroup == "" {
		return convert.Missing("fast_replaceable_group")
	}
	if f.CollisionBox != nil {
		if f.TileWidth == 0 {
			f.TileWidth = tilesCovered(f.CollisionBox.Width())
		}
		if f.TileHeight == 0 {
			f.TileHeight = tilesCovered(f.CollisionBox.Height())
		}
	}
	return nil
}

func tilesCovered(extent float64) uint32 {
	return uint32(max(math.Ceil(extent), 1))
}

// HealthFields is the layer of entity-with-health.
type HealthFields struct {
	MaxHealth                   float32            `proto:"max_health,default=10"`
	Healing                     float32            `proto:"healing_per_tick"`
	RepairSpeedModifier         float32            `proto:"repair_speed_modifier,default=1"`
	Resistances                 []types.Resistance `proto:"resistances"`
	Loot                        []types.Loot       `proto:"loot"`
	Corpse                      []string           `proto:"corpse,single"`
	DyingExplosion              []string           `proto:"dying_explosion,single"`
	CreateGhostOnDeath          bool               `proto:"create_ghost_on_death,default=true"`
	HideResistances             bool               `proto:"hide_resistances,default=true"`
	IntegrationPatchRenderLayer string             `proto:"integration_patch_render_layer,default=lower-object"`
}

func (f *HealthFields) PostConvert(*convert.Context) error {
	if f.MaxHealth <= 0 {
		return convert.Invalid("max_health", "must be positive, got %g", f.MaxHealth)
	}
	seen := make(map[string]bool, len(f.Resistances))
	for _, r := range f.Resistances {
		if seen[r.Type] {
			return convert.Invalid("resistances", "damage type %q is listed more than once", r.Type)
		}
		seen[r.Type] = true
	}
	return nil
}

// OwnerFields is the layer of entity-with-owner.
type OwnerFields struct {
	IsMilitaryTarget                     bool `proto:"is_military_target"`
	AllowRunTimeChangeOfIsMilitaryTarget bool `proto:"allow_run_time_change_of_is_military_target"`
}

// Entity is implemented by every concrete entity kind.
type Entity interface {
	Base() *EntityFields
}

func (f *EntityFields) Base() *EntityFields { return f }
