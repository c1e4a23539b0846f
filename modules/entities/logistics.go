package entities

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// MaxInserterFilters bounds the filter slots of an inserter.
const MaxInserterFilters = 5

// ContainerFields is the layer of container.
type ContainerFields struct {
	InventorySize      uint16        `proto:"inventory_size,required"`
	Picture            *types.Sprite `proto:"picture"`
	InventoryType      string        `proto:"inventory_type,default=with_bar,oneof=with_bar|with_filters_and_bar"`
	EnableInventoryBar bool          `proto:"enable_inventory_bar,default=true"`
	ScaleInfoIcons     bool          `proto:"scale_info_icons"`
}

// Container is a chest.
type Container struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	ContainerFields
}

// PipeFields is the layer of pipe.
type PipeFields struct {
	FluidBox                    types.FluidBox     `proto:"fluid_box,required"`
	Pictures                    value.Value        `proto:"pictures,required"`
	HorizontalWindowBoundingBox *types.BoundingBox `proto:"horizontal_window_bounding_box"`
	VerticalWindowBoundingBox   *types.BoundingBox `proto:"vertical_window_bounding_box"`
}

// Pipe carries fluids between fluid boxes.
type Pipe struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	PipeFields
}

// StorageTankFields is the layer of storage-tank.
type StorageTankFields struct {
	FluidBox          types.FluidBox    `proto:"fluid_box,required"`
	WindowBoundingBox types.BoundingBox `proto:"window_bounding_box,required"`
	Pictures          value.Value       `proto:"pictures,required"`
	FlowLengthInTicks uint32            `proto:"flow_length_in_ticks,required"`
	TwoDirectionOnly  bool              `proto:"two_direction_only"`
	ShowFluidIcon     bool              `proto:"show_fluid_icon,default=true"`
	ScaleInfoIcons    bool              `proto:"scale_info_icons"`
}

func (f *StorageTankFields) PostConvert(*convert.Context) error {
	if f.FlowLengthInTicks == 0 {
		return convert.Invalid("flow_length_in_ticks", "must be at least 1")
	}
	return nil
}

// StorageTank stores a large amount of one fluid.
type StorageTank struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	StorageTankFields
}

// InserterFields is the layer of inserter.
type InserterFields struct {
	ExtensionSpeed     float64            `proto:"extension_speed,required"`
	RotationSpeed      float64            `proto:"rotation_speed,required"`
	InsertPosition     types.Vector       `proto:"insert_position,required"`
	PickupPosition     types.Vector       `proto:"pickup_position,required"`
	EnergySource       types.EnergySource `proto:"energy_source,required"`
	EnergyPerMovement  types.Energy       `proto:"energy_per_movement,default=0J"`
	EnergyPerRotation  types.Energy       `proto:"energy_per_rotation,default=0J"`
	FilterCount        uint8              `proto:"filter_count"`
	Stack              bool               `proto:"stack"`
	AllowCustomVectors bool               `proto:"allow_custom_vectors"`
	AllowBurnerLeech   bool               `proto:"allow_burner_leech"`
	ChasesBeltItems    bool               `proto:"chases_belt_items,default=true"`
	HandBaseShadow     *types.Sprite      `proto:"hand_base_picture"`
	PlatformPicture    value.Value        `proto:"platform_picture"`
}

func (f *InserterFields) PostConvert(*convert.Context) error {
	if f.ExtensionSpeed <= 0 {
		return convert.Invalid("extension_speed", "must be positive, got %g", f.ExtensionSpeed)
	}
	if f.RotationSpeed <= 0 {
		return convert.Invalid("rotation_speed", "must be positive, got %g", f.RotationSpeed)
	}
	if f.FilterCount > MaxInserterFilters {
		return convert.Invalid("filter_count", "no more than %d filters are allowed, got %d", MaxInserterFilters, f.FilterCount)
	}
	return nil
}

// Inserter moves items between entities.
type Inserter struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	InserterFields
}

// TransportBeltFields is the layer of transport-belt.
type TransportBeltFields struct {
	Speed                     float64     `proto:"speed,required"`
	AnimationSpeedCoefficient float64     `proto:"animation_speed_coefficient,default=1"`
	BeltAnimationSet          value.Value `proto:"belt_animation_set"`
	RelatedUndergroundBelt    string      `proto:"related_underground_belt,ref=entity"`
	ConnectorFrameSprites     value.Value `proto:"connector_frame_sprites"`
}

func (f *TransportBeltFields) PostConvert(*convert.Context) error {
	if f.Speed <= 0 {
		return convert.Invalid("speed", "must be positive, got %g", f.Speed)
	}
	return nil
}

// ItemsPerSecond returns the belt throughput over both lanes.
func (f *TransportBeltFields) ItemsPerSecond() float64 {
	// Each lane moves one item per 0.25 tiles; speed is tiles per tick.
	return f.Speed * types.TicksPerSecond * 4 * 2
}

// TransportBelt moves items along a line.
type TransportBelt struct {
	prototype.PrototypeBase
	EntityFields
	HealthFields
	OwnerFields
	TransportBeltFields
}
