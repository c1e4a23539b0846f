package entities

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// CraftingMachineFields is the layer of crafting-machine.
type CraftingMachineFields struct {
	CraftingSpeed             float64                    `proto:"crafting_speed,required"`
	CraftingCategories        []string                   `proto:"crafting_categories,required,ref=recipe-category"`
	EnergyUsage               types.Energy               `proto:"energy_usage,required"`
	EnergySource              types.EnergySource         `proto:"energy_source,required"`
	FluidBoxes                []types.FluidBox           `proto:"fluid_boxes"`
	Animation                 *types.Animation4Way       `proto:"animation"`
	IdleAnimation             *types.Animation4Way       `proto:"idle_animation"`
	ModuleSpecification       *types.ModuleSpecification `proto:"module_specification"`
	AllowedEffects            []string                   `proto:"allowed_effects,single,oneof=speed|productivity|consumption|pollution"`
	BaseProductivity          float32                    `proto:"base_productivity"`
	ReturnIngredientsOnChange bool                       `proto:"return_ingredients_on_change,default=true"`
	ShowRecipeIconOnMap       bool                       `proto:"show_recipe_icon_on_map,default=true"`
	ScaleEntityInfoIcon       bool                       `proto:"scale_entity_info_icon"`
}

func (f *CraftingMachineFields) PostConvert(*convert.Context) error {
	if f.CraftingSpeed <= 0 {
		return convert.Invalid("crafting_speed", "must be positive, got %g", f.CraftingSpeed)
	}
	if len(f.CraftingCategories) == 0 {
		return convert.Invalid("crafting_categories", "must name at least one recipe category")
	}
	if f.EnergyUsage <= 0 {
		return convert.Invalid("energy_usage", "must be positive, got %s", f.EnergyUsage)
	}
	return nil
}

// Crafts reports whether the machine accepts recipes of category.
func (f *CraftingMachineFields) Crafts(category string) bool {
	for _, c := range f.CraftingCategories {
		if c == category {
			return true
		}
	}
	return false
}

// AssemblingMachineFields is the layer of assembling-machine.
type AssemblingMachineFields struct {
	FixedRecipe     string `proto:"fixed_recipe,ref=recipe"`
	GuiTitleKey     string `proto:"gui_title_key"`
	IngredientCount uint8  `proto:"ingredient_count,default=255"`
}

// AssemblingMachine crafts recipes chosen by the player.
type AssemblingMachine struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	CraftingMachineFields
	AssemblingMachineFields
}

// FurnaceFields is the layer of furnace.
type FurnaceFields struct {
	ResultInventorySize uint16 `proto:"result_inventory_size,required"`
	SourceInventorySize uint16 `proto:"source_inventory_size,required"`
}

func (f *FurnaceFields) PostConvert(*convert.Context) error {
	if f.SourceInventorySize > 1 {
		return convert.Invalid("source_inventory_size", "must be 0 or 1, got %d", f.SourceInventorySize)
	}
	return nil
}

// Furnace picks its recipe from the ingredient it is given.
type Furnace struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	CraftingMachineFields
	FurnaceFields
}

// MiningDrillFields is the layer of mining-drill.
type MiningDrillFields struct {
	MiningSpeed             float64                    `proto:"mining_speed,required"`
	EnergySource            types.EnergySource         `proto:"energy_source,required"`
	EnergyUsage             types.Energy               `proto:"energy_usage,required"`
	ResourceCategories      []string                   `proto:"resource_categories,required,ref=resource-category"`
	ResourceSearchingRadius float64                    `proto:"resource_searching_radius,required"`
	VectorToPlaceResult     types.Vector               `proto:"vector_to_place_result,required"`
	OutputFluidBox          *types.FluidBox            `proto:"output_fluid_box"`
	InputFluidBox           *types.FluidBox            `proto:"input_fluid_box"`
	BaseProductivity        float32                    `proto:"base_productivity"`
	ModuleSpecification     *types.ModuleSpecification `proto:"module_specification"`
	Animations              *types.Animation4Way       `proto:"animations"`
}

func (f *MiningDrillFields) PostConvert(*convert.Context) error {
	if f.MiningSpeed <= 0 {
		return convert.Invalid("mining_speed", "must be positive, got %g", f.MiningSpeed)
	}
	if f.ResourceSearchingRadius <= 0 {
		return convert.Invalid("resource_searching_radius", "must be positive, got %g", f.ResourceSearchingRadius)
	}
	return nil
}

// MiningDrill extracts resources.
type MiningDrill struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	MiningDrillFields
}

// BoilerFields is the layer of boiler.
type BoilerFields struct {
	EnergySource      types.EnergySource   `proto:"energy_source,required"`
	FluidBox          types.FluidBox       `proto:"fluid_box,required"`
	OutputFluidBox    types.FluidBox       `proto:"output_fluid_box,required"`
	EnergyConsumption types.Energy         `proto:"energy_consumption,required"`
	TargetTemperature float64              `proto:"target_temperature,required"`
	Mode              string               `proto:"mode,default=heat-water-inside,oneof=heat-water-inside|output-to-separate-pipe"`
	Structure         *types.Animation4Way `proto:"structure"`
	BurningCooldown   uint16               `proto:"burning_cooldown"`
}

func (f *BoilerFields) PostConvert(*convert.Context) error {
	if f.EnergyConsumption <= 0 {
		return convert.Invalid("energy_consumption", "must be positive, got %s", f.EnergyConsumption)
	}
	return nil
}

// Boiler heats a fluid using an energy source.
type Boiler struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	BoilerFields
}

// OffshorePumpFields is the layer of offshore-pump.
type OffshorePumpFields struct {
	FluidBox     types.FluidBox       `proto:"fluid_box,required"`
	PumpingSpeed float32              `proto:"pumping_speed,required"`
	Fluid        string               `proto:"fluid,required,ref=fluid"`
	Graphics     *types.Animation4Way `proto:"graphics_set"`
}

func (f *OffshorePumpFields) PostConvert(*convert.Context) error {
	if f.PumpingSpeed <= 0 {
		return convert.Invalid("pumping_speed", "must be positive, got %g", f.PumpingSpeed)
	}
	return nil
}

// OffshorePump pumps a fluid out of water tiles.
type OffshorePump struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	OffshorePumpFields
}
