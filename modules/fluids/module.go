// Package fluids registers the fluid kind.
package fluids

import (
	"math"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// KindFluid is the kind registered by this package.
const KindFluid prototype.Kind = "fluid"

// FluidFields is the layer of fluid.
type FluidFields struct {
	types.IconSpecification
	DefaultTemperature  float64      `proto:"default_temperature,required"`
	BaseColor           types.Color  `proto:"base_color,required"`
	FlowColor           types.Color  `proto:"flow_color,required"`
	MaxTemperature      *float64     `proto:"max_temperature"`
	HeatCapacity        types.Energy `proto:"heat_capacity,default=1kJ"`
	FuelValue           types.Energy `proto:"fuel_value"`
	EmissionsMultiplier float64      `proto:"emissions_multiplier,default=1"`
	Subgroup            string       `proto:"subgroup,default=fluid,ref=item-subgroup"`
	GasTemperature      *float64     `proto:"gas_temperature"`
	Hidden              bool         `proto:"hidden"`
}

func (f *FluidFields) PostConvert(*convert.Context) error {
	if err := f.CheckIcon(); err != nil {
		return err
	}
	if f.MaxTemperature == nil {
		t := f.DefaultTemperature
		f.MaxTemperature = &t
	}
	if *f.MaxTemperature < f.DefaultTemperature {
		return convert.Invalid("max_temperature", "must be at least default_temperature %g, got %g", f.DefaultTemperature, *f.MaxTemperature)
	}
	if f.GasTemperature == nil {
		t := math.MaxFloat64
		f.GasTemperature = &t
	}
	if f.HeatCapacity <= 0 {
		return convert.Invalid("heat_capacity", "must be positive, got %s", f.HeatCapacity)
	}
	return nil
}

// IsGas reports whether the fluid is a gas at temperature.
func (f *FluidFields) IsGas(temperature float64) bool {
	return f.GasTemperature != nil && temperature >= *f.GasTemperature
}

// Fluid is a liquid or gas moved through pipes.
type Fluid struct {
	prototype.PrototypeBase
	FluidFields
}

// Register registers the fluid kind.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindFluid, Parent: prototype.RootKind, Layer: FluidFields{}, New: func() prototype.Prototype { return &Fluid{} }})
}
