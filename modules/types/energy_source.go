package types

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
)

// Energy source types.
const (
	ElectricSource = "electric"
	BurnerSource   = "burner"
	HeatSource     = "heat"
	FluidSource    = "fluid"
	VoidSource     = "void"
)

// DefaultFuelCategory is used by burners that name no fuel category.
const DefaultFuelCategory = "chemical"

// EnergySource is how an entity is powered. The type selects which of the
// other fields apply; the rest keep their zero values.
type EnergySource struct {
	Type               string  `proto:"type,required,oneof=electric|burner|heat|fluid|void"`
	EmissionsPerMinute float64 `proto:"emissions_per_minute"`
	RenderNoPowerIcon  bool    `proto:"render_no_power_icon,default=true"`

	// Electric.
	UsagePriority   string  `proto:"usage_priority,oneof=primary-input|primary-output|secondary-input|secondary-output|tertiary|solar|lamp"`
	BufferCapacity  *Energy `proto:"buffer_capacity"`
	InputFlowLimit  *Energy `proto:"input_flow_limit"`
	OutputFlowLimit *Energy `proto:"output_flow_limit"`
	Drain           *Energy `proto:"drain"`

	// Burner.
	FuelInventorySize  *uint16  `proto:"fuel_inventory_size"`
	BurntInventorySize uint16   `proto:"burnt_inventory_size"`
	Effectivity        float64  `proto:"effectivity,default=1"`
	FuelCategory       string   `proto:"fuel_category,ref=fuel-category"`
	FuelCategories     []string `proto:"fuel_categories,ref=fuel-category"`

	// Heat.
	MaxTemperature     float64 `proto:"max_temperature"`
	DefaultTemperature float64 `proto:"default_temperature,default=15"`
	SpecificHeat       *Energy `proto:"specific_heat"`
	MaxTransfer        *Energy `proto:"max_transfer"`

	// Fluid.
	FluidBox          *FluidBox `proto:"fluid_box"`
	BurnsFluid        bool      `proto:"burns_fluid"`
	ScaleFluidUsage   bool      `proto:"scale_fluid_usage"`
	FluidUsagePerTick float64   `proto:"fluid_usage_per_tick"`
}

func (es *EnergySource) PostConvert(*convert.Context) error {
	switch es.Type {
	case ElectricSource:
		if es.UsagePriority == "" {
			return convert.Missing("usage_priority")
		}
	case BurnerSource:
		if es.FuelInventorySize == nil {
			return convert.Missing("fuel_inventory_size")
		}
		if es.Effectivity <= 0 {
			return convert.Invalid("effectivity", "must be positive, got %g", es.Effectivity)
		}
		switch {
		case len(es.FuelCategories) > 0:
		case es.FuelCategory != "":
			es.FuelCategories = []string{es.FuelCategory}
		default:
			es.FuelCategories = []string{DefaultFuelCategory}
		}
	case HeatSource:
		if es.SpecificHeat == nil {
			return convert.Missing("specific_heat")
		}
		if es.MaxTransfer == nil {
			return convert.Missing("max_transfer")
		}
		if es.MaxTemperature < es.DefaultTemperature {
			return convert.Invalid("max_temperature", "must be at least default_temperature %g, got %g", es.DefaultTemperature, es.MaxTemperature)
		}
	case FluidSource:
		if es.FluidBox == nil {
			return convert.Missing("fluid_box")
		}
	}
	return nil
}

// Resistance reduces incoming damage of one damage type.
type Resistance struct {
	Type     string  `proto:"type,required,ref=damage-type"`
	Decrease float32 `proto:"decrease"`
	Percent  float32 `proto:"percent"`
}

func (r *Resistance) PostConvert(*convert.Context) error {
	if r.Percent > 100 {
		return convert.Invalid("percent", "must not exceed 100, got %g", r.Percent)
	}
	return nil
}

// ModuleSpecification describes the module slots of a machine.
type ModuleSpecification struct {
	ModuleSlots          uint16  `proto:"module_slots"`
	ModuleInfoIconShift  *Vector `proto:"module_info_icon_shift"`
	ModuleInfoMaxIconRow uint8   `proto:"module_info_max_icons_per_row"`
}
