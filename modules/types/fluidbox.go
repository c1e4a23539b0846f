package types

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
)

// MaxPipeConnections bounds the connections of one fluid box.
const MaxPipeConnections = 255

// FluidBox is a fluid container of an entity.
type FluidBox struct {
	PipeConnections    []PipeConnection `proto:"pipe_connections,required"`
	BaseArea           float64          `proto:"base_area,default=1"`
	BaseLevel          float64          `proto:"base_level"`
	Height             float64          `proto:"height,default=1"`
	Filter             string           `proto:"filter,ref=fluid"`
	RenderLayer        string           `proto:"render_layer,default=object"`
	MinimumTemperature *float64         `proto:"minimum_temperature"`
	MaximumTemperature *float64         `proto:"maximum_temperature"`
	ProductionType     string           `proto:"production_type,default=none,oneof=none|input|input-output|output"`
	SecondaryDrawOrder int8             `proto:"secondary_draw_order,default=1"`
}

func (fb *FluidBox) PostConvert(*convert.Context) error {
	if len(fb.PipeConnections) > MaxPipeConnections {
		return convert.Invalid("pipe_connections", "no more than %d connections are allowed, got %d", MaxPipeConnections, len(fb.PipeConnections))
	}
	if fb.BaseArea <= 0 {
		return convert.Invalid("base_area", "must be positive, got %g", fb.BaseArea)
	}
	if fb.Height <= 0 {
		return convert.Invalid("height", "must be positive, got %g", fb.Height)
	}
	if fb.MinimumTemperature != nil && fb.MaximumTemperature != nil && *fb.MinimumTemperature > *fb.MaximumTemperature {
		return convert.Invalid("minimum_temperature", "must not exceed maximum_temperature")
	}
	return nil
}

// PipeConnection is one connection point of a fluid box. A single position
// applies to every direction; positions lists one per direction.
type PipeConnection struct {
	Position               *Vector  `proto:"position"`
	Positions              []Vector `proto:"positions"`
	MaxUndergroundDistance uint32   `proto:"max_underground_distance"`
	Type                   string   `proto:"type,default=input-output,oneof=input|input-output|output"`
}

func (pc *PipeConnection) PostConvert(*convert.Context) error {
	switch {
	case pc.Position != nil && len(pc.Positions) == 0:
		pc.Positions = []Vector{*pc.Position, *pc.Position, *pc.Position, *pc.Position}
	case len(pc.Positions) == 0:
		return convert.Missing("position")
	case len(pc.Positions) != 4:
		return convert.Invalid("positions", "expected 4 positions, got %d", len(pc.Positions))
	}
	return nil
}
