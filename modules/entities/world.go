package entities

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// ResourceFields is the layer of resource.
type ResourceFields struct {
	Stages                    value.Value  `proto:"stages,required"`
	StageCounts               []uint32     `proto:"stage_counts,required"`
	Category                  string       `proto:"category,default=basic-solid,ref=resource-category"`
	Infinite                  bool         `proto:"infinite"`
	Minimum                   uint32       `proto:"minimum"`
	Normal                    uint32       `proto:"normal"`
	InfiniteDepletionAmount   uint32       `proto:"infinite_depletion_amount,default=1"`
	ResourcePatchSearchRadius uint32       `proto:"resource_patch_search_radius,default=3"`
	Autoplace                 value.Value  `proto:"autoplace"`
	MapGrid                   bool         `proto:"map_grid,default=true"`
	StagesEffect              value.Value  `proto:"stages_effect"`
	EffectAnimationPeriod     float32      `proto:"effect_animation_period"`
	MiningVisualisationTint   *types.Color `proto:"mining_visualisation_tint"`
}

func (f *ResourceFields) PostConvert(*convert.Context) error {
	if len(f.StageCounts) == 0 {
		return convert.Invalid("stage_counts", "must list at least one stage")
	}
	if f.Infinite {
		if f.Minimum == 0 {
			return convert.Missing("minimum")
		}
		if f.Normal == 0 {
			return convert.Missing("normal")
		}
	}
	return nil
}

// Resource is an ore patch tile entity.
type Resource struct {
	prototype.PrototypeBase
	EntityFields
	ResourceFields
}

// CheckPrototype requires minable on every resource.
func (r *Resource) CheckPrototype(*convert.Context) error {
	if r.Minable == nil {
		return convert.Missing("minable")
	}
	return nil
}

// TreeFields is the layer of tree.
type TreeFields struct {
	Variations          value.Value   `proto:"variations"`
	Pictures            value.Value   `proto:"pictures"`
	Colors              []types.Color `proto:"colors"`
	DarknessOfBurntTree float32       `proto:"darkness_of_burnt_tree,default=0.5"`
	EmissionsPerSecond  float64       `proto:"emissions_per_second"`
}

func (f *TreeFields) PostConvert(*convert.Context) error {
	if f.Variations.IsNil() && f.Pictures.IsNil() {
		return convert.Missing("pictures")
	}
	return nil
}

// Tree is a tree.
type Tree struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	TreeFields
}

// SimpleEntityFields is the layer of simple-entity.
type SimpleEntityFields struct {
	Picture                              *types.Sprite  `proto:"picture"`
	Pictures                             []types.Sprite `proto:"pictures"`
	Animations                           value.Value    `proto:"animations"`
	CountAsRockForFilteredDeconstruction bool           `proto:"count_as_rock_for_filtered_deconstruction"`
	RenderLayer                          string         `proto:"render_layer,default=object"`
	RandomAnimationOffset                bool           `proto:"random_animation_offset"`
	RandomVariationOnCreate              bool           `proto:"random_variation_on_create,default=true"`
}

func (f *SimpleEntityFields) PostConvert(*convert.Context) error {
	if f.Picture == nil && len(f.Pictures) == 0 && f.Animations.IsNil() {
		return convert.Missing("picture")
	}
	return nil
}

// SimpleEntity is a static entity such as a rock.
type SimpleEntity struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	SimpleEntityFields
}
