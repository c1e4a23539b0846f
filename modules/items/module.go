// Package items registers the item kind and its specialisations.
package items

import (
	"maps"
	"slices"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kinds registered by this package.
const (
	KindItem               prototype.Kind = "item"
	KindAmmo               prototype.Kind = "ammo"
	KindCapsule            prototype.Kind = "capsule"
	KindGun                prototype.Kind = "gun"
	KindModule             prototype.Kind = "module"
	KindTool               prototype.Kind = "tool"
	KindArmor              prototype.Kind = "armor"
	KindRepairTool         prototype.Kind = "repair-tool"
	KindItemWithEntityData prototype.Kind = "item-with-entity-data"
	KindRailPlanner        prototype.Kind = "rail-planner"
)

// ItemFields is the layer every item kind shares.
type ItemFields struct {
	types.IconSpecification
	StackSize                  uint32          `proto:"stack_size,required"`
	PlaceResult                string          `proto:"place_result,ref=entity"`
	PlacedAsEquipmentResult    string          `proto:"placed_as_equipment_result"`
	Subgroup                   string          `proto:"subgroup,default=other,ref=item-subgroup"`
	FuelCategory               string          `proto:"fuel_category,ref=fuel-category"`
	BurntResult                string          `proto:"burnt_result,ref=item"`
	FuelValue                  types.Energy    `proto:"fuel_value"`
	FuelAccelerationMultiplier float64         `proto:"fuel_acceleration_multiplier,default=1"`
	FuelTopSpeedMultiplier     float64         `proto:"fuel_top_speed_multiplier,default=1"`
	FuelEmissionsMultiplier    float64         `proto:"fuel_emissions_multiplier,default=1"`
	FuelGlowColor              *types.Color    `proto:"fuel_glow_color"`
	PlaceAsTile                *PlaceAsTile    `proto:"place_as_tile"`
	Pictures                   []types.Sprite  `proto:"pictures,single"`
	Flags                      []string        `proto:"flags,oneof=draw-logistic-overlay|hidden|always-show|hide-from-bonus-gui|hide-from-fuel-tooltip|not-stackable|can-extend-inventory|primary-place-result|mod-openable|only-in-cursor|spawnable"`
	DefaultRequestAmount       *uint32         `proto:"default_request_amount"`
	WireCount                  uint32          `proto:"wire_count"`
	RocketLaunchProducts       []types.Product `proto:"rocket_launch_products"`
}

// PlaceAsTile turns an item into a tile when placed.
type PlaceAsTile struct {
	Result        string   `proto:"result,required,ref=tile"`
	ConditionSize uint32   `proto:"condition_size,default=1"`
	Condition     []string `proto:"condition"`
}

func (f *ItemFields) PostConvert(*convert.Context) error {
	if err := f.CheckIcon(); err != nil {
		return err
	}
	if f.StackSize == 0 {
		return convert.Invalid("stack_size", "must be at least 1")
	}
	if f.HasFlag("not-stackable") && f.StackSize != 1 {
		return convert.Invalid("stack_size", "must be 1 for not-stackable items, got %d", f.StackSize)
	}
	if f.FuelValue > 0 && f.FuelCategory == "" {
		return convert.Missing("fuel_category")
	}
	if f.DefaultRequestAmount == nil {
		n := f.StackSize
		f.DefaultRequestAmount = &n
	}
	return nil
}

// HasFlag reports whether the item carries flag.
func (f *ItemFields) HasFlag(flag string) bool {
	return slices.Contains(f.Flags, flag)
}

// Item is a plain item.
type Item struct {
	prototype.PrototypeBase
	ItemFields
}

// AmmoType is one way ammunition can be used.
type AmmoType struct {
	Category          string        `proto:"category,required,ref=ammo-category"`
	Action            value.Value   `proto:"action"`
	TargetType        string        `proto:"target_type,default=entity,oneof=entity|position|direction"`
	ClampPosition     bool          `proto:"clamp_position"`
	SourceType        string        `proto:"source_type,default=default,oneof=default|player|turret|vehicle"`
	EnergyConsumption *types.Energy `proto:"energy_consumption"`
}

// AmmoFields is the layer of ammo.
type AmmoFields struct {
	AmmoType     []AmmoType `proto:"ammo_type,required,single"`
	MagazineSize float32    `proto:"magazine_size,default=1"`
	ReloadTime   float32    `proto:"reload_time"`
}

func (f *AmmoFields) PostConvert(*convert.Context) error {
	if f.MagazineSize < 1 {
		return convert.Invalid("magazine_size", "must be at least 1, got %g", f.MagazineSize)
	}
	return nil
}

// Ammo is ammunition for guns and turrets.
type Ammo struct {
	prototype.PrototypeBase
	ItemFields
	AmmoFields
}

// CapsuleFields is the layer of capsule.
type CapsuleFields struct {
	CapsuleAction value.Value  `proto:"capsule_action,required"`
	RadiusColor   *types.Color `proto:"radius_color"`
}

// Capsule is a throwable or usable item such as a grenade or fish.
type Capsule struct {
	prototype.PrototypeBase
	ItemFields
	CapsuleFields
}

// AttackParameters describes how a gun fires.
type AttackParameters struct {
	Type             string    `proto:"type,required,oneof=projectile|beam|stream"`
	Range            float32   `proto:"range,required"`
	Cooldown         float32   `proto:"cooldown,required"`
	MinRange         float32   `proto:"min_range"`
	AmmoCategory     string    `proto:"ammo_category,ref=ammo-category"`
	AmmoCategories   []string  `proto:"ammo_categories,ref=ammo-category"`
	AmmoType         *AmmoType `proto:"ammo_type"`
	DamageModifier   float32   `proto:"damage_modifier,default=1"`
	MovementSlowDown float32   `proto:"movement_slow_down_factor"`
}

func (ap *AttackParameters) PostConvert(*convert.Context) error {
	if ap.Cooldown <= 0 {
		return convert.Invalid("cooldown", "must be positive, got %g", ap.Cooldown)
	}
	if ap.MinRange > ap.Range {
		return convert.Invalid("min_range", "must not exceed range %g, got %g", ap.Range, ap.MinRange)
	}
	if ap.AmmoCategory == "" && len(ap.AmmoCategories) == 0 && ap.AmmoType == nil {
		return convert.Missing("ammo_category")
	}
	return nil
}

// GunFields is the layer of gun.
type GunFields struct {
	AttackParameters AttackParameters `proto:"attack_parameters,required"`
}

// Gun is a hand held weapon.
type Gun struct {
	prototype.PrototypeBase
	ItemFields
	GunFields
}

// Module effect names.
var effectNames = []string{"consumption", "speed", "productivity", "pollution"}

// Effect is one bonus of a module.
type Effect struct {
	Bonus float64 `proto:"bonus,required"`
}

// ModuleFields is the layer of module.
type ModuleFields struct {
	Category             string            `proto:"category,required,ref=module-category"`
	Tier                 uint32            `proto:"tier,required"`
	Effect               map[string]Effect `proto:"effect,required"`
	Limitation           []string          `proto:"limitation,ref=recipe"`
	LimitationBlacklist  []string          `proto:"limitation_blacklist,ref=recipe"`
	LimitationMessageKey string            `proto:"limitation_message_key"`
}

func (f *ModuleFields) PostConvert(*convert.Context) error {
	for _, name := range slices.Sorted(maps.Keys(f.Effect)) {
		if !slices.Contains(effectNames, name) {
			return convert.BadVariant("effect", name, effectNames...)
		}
	}
	return nil
}

// ModuleItem is an item inserted into machine module slots.
type ModuleItem struct {
	prototype.PrototypeBase
	ItemFields
	ModuleFields
}

// ToolFields is the layer of tool, shared by armor and repair-tool.
type ToolFields struct {
	Durability               *float64 `proto:"durability"`
	DurabilityDescriptionKey string   `proto:"durability_description_key,default=description.science-pack-remaining-amount-key"`
	Infinite                 bool     `proto:"infinite,default=true"`
}

func (f *ToolFields) PostConvert(*convert.Context) error {
	if f.Durability != nil {
		if *f.Durability <= 0 {
			return convert.Invalid("durability", "must be positive, got %g", *f.Durability)
		}
		f.Infinite = false
	}
	return nil
}

// Tool is an item with durability, such as a science pack.
type Tool struct {
	prototype.PrototypeBase
	ItemFields
	ToolFields
}

// ArmorFields is the layer of armor.
type ArmorFields struct {
	Resistances        []types.Resistance `proto:"resistances"`
	EquipmentGrid      string             `proto:"equipment_grid"`
	InventorySizeBonus uint16             `proto:"inventory_size_bonus"`
}

// Armor is wearable armor.
type Armor struct {
	prototype.PrototypeBase
	ItemFields
	ToolFields
	ArmorFields
}

// RepairToolFields is the layer of repair-tool.
type RepairToolFields struct {
	Speed        float32     `proto:"speed,required"`
	RepairResult value.Value `proto:"repair_result"`
}

func (f *RepairToolFields) PostConvert(*convert.Context) error {
	if f.Speed <= 0 {
		return convert.Invalid("speed", "must be positive, got %g", f.Speed)
	}
	return nil
}

// RepairTool is a repair pack.
type RepairTool struct {
	prototype.PrototypeBase
	ItemFields
	ToolFields
	RepairToolFields
}

// ItemWithEntityDataFields is the layer of item-with-entity-data.
type ItemWithEntityDataFields struct {
	IconTintable     string `proto:"icon_tintable"`
	IconTintableMask string `proto:"icon_tintable_mask"`
}

// ItemWithEntityData is an item that remembers the entity it was picked up from.
type ItemWithEntityData struct {
	prototype.PrototypeBase
	ItemFields
	ItemWithEntityDataFields
}

// RailPlannerFields is the layer of rail-planner.
type RailPlannerFields struct {
	StraightRail string `proto:"straight_rail,required,ref=entity"`
	CurvedRail   string `proto:"curved_rail,required,ref=entity"`
}

// RailPlanner is the item used to build rails.
type RailPlanner struct {
	prototype.PrototypeBase
	ItemFields
	RailPlannerFields
}

// Register registers the item kinds.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindItem, Parent: prototype.RootKind, Layer: ItemFields{}, New: func() prototype.Prototype { return &Item{} }})
	b.Register(registry.KindSpec{Name: KindAmmo, Parent: KindItem, Layer: AmmoFields{}, New: func() prototype.Prototype { return &Ammo{} }})
	b.Register(registry.KindSpec{Name: KindCapsule, Parent: KindItem, Layer: CapsuleFields{}, New: func() prototype.Prototype { return &Capsule{} }})
	b.Register(registry.KindSpec{Name: KindGun, Parent: KindItem, Layer: GunFields{}, New: func() prototype.Prototype { return &Gun{} }})
	b.Register(registry.KindSpec{Name: KindModule, Parent: KindItem, Layer: ModuleFields{}, New: func() prototype.Prototype { return &ModuleItem{} }})
	b.Register(registry.KindSpec{Name: KindTool, Parent: KindItem, Layer: ToolFields{}, New: func() prototype.Prototype { return &Tool{} }})
	b.Register(registry.KindSpec{Name: KindArmor, Parent: KindTool, Layer: ArmorFields{}, New: func() prototype.Prototype { return &Armor{} }})
	b.Register(registry.KindSpec{Name: KindRepairTool, Parent: KindTool, Layer: RepairToolFields{}, New: func() prototype.Prototype { return &RepairTool{} }})
	b.Register(registry.KindSpec{Name: KindItemWithEntityData, Parent: KindItem, Layer: ItemWithEntityDataFields{}, New: func() prototype.Prototype { return &ItemWithEntityData{} }})
	b.Register(registry.KindSpec{Name: KindRailPlanner, Parent: KindItem, Layer: RailPlannerFields{}, New: func() prototype.Prototype { return &RailPlanner{} }})
}
