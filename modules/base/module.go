// Package base registers the root prototype kind and the small category
// and grouping kinds other prototypes refer to.
package base

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/modules/types"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// DamageType is a kind of damage, e.g. "physical" or "fire".
type DamageType struct {
	prototype.PrototypeBase
	DamageTypeFields
}

// DamageTypeFields is the layer of damage-type.
type DamageTypeFields struct {
	Hidden bool `proto:"hidden"`
}

// AmmoCategory groups ammunition usable by the same guns.
type AmmoCategory struct {
	prototype.PrototypeBase
	CategoryFields
}

// FuelCategory groups fuels accepted by the same burners.
type FuelCategory struct {
	prototype.PrototypeBase
}

// RecipeCategory groups recipes craftable by the same machines.
type RecipeCategory struct {
	prototype.PrototypeBase
}

// ResourceCategory groups resources minable by the same drills.
type ResourceCategory struct {
	prototype.PrototypeBase
}

// ModuleCategory groups modules, e.g. "speed" or "productivity".
type ModuleCategory struct {
	prototype.PrototypeBase
}

// EquipmentCategory groups equipment accepted by the same grids.
type EquipmentCategory struct {
	prototype.PrototypeBase
}

// CategoryFields is the layer of ammo-category.
type CategoryFields struct {
	BonusGuiOrder string `proto:"bonus_gui_order"`
}

// ItemGroup is a tab of the crafting menu.
type ItemGroup struct {
	prototype.PrototypeBase
	ItemGroupFields
}

// ItemGroupFields is the layer of item-group.
type ItemGroupFields struct {
	types.IconSpecification
	OrderInRecipe string `proto:"order_in_recipe"`
}

func (g *ItemGroupFields) PostConvert(*convert.Context) error {
	return g.CheckIcon()
}

// ItemSubgroup is a row inside an item group.
type ItemSubgroup struct {
	prototype.PrototypeBase
	ItemSubgroupFields
}

// ItemSubgroupFields is the layer of item-subgroup.
type ItemSubgroupFields struct {
	Group string `proto:"group,required,ref=item-group"`
}

// VirtualSignal is a circuit network signal that is not an item or a fluid.
type VirtualSignal struct {
	prototype.PrototypeBase
	VirtualSignalFields
}

// VirtualSignalFields is the layer of virtual-signal.
type VirtualSignalFields struct {
	types.IconSpecification
	Subgroup string `proto:"subgroup,default=virtual-signal,ref=item-subgroup"`
}

func (s *VirtualSignalFields) PostConvert(*convert.Context) error {
	return s.CheckIcon()
}

// Register registers the root kind and the category kinds.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: prototype.RootKind, Layer: prototype.PrototypeBase{}})

	b.Register(registry.KindSpec{
		Name:   "damage-type",
		Parent: prototype.RootKind,
		Layer:  DamageTypeFields{},
		New:    func() prototype.Prototype { return &DamageType{} },
	})
	b.Register(registry.KindSpec{
		Name:   "ammo-category",
		Parent: prototype.RootKind,
		Layer:  CategoryFields{},
		New:    func() prototype.Prototype { return &AmmoCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "fuel-category",
		Parent: prototype.RootKind,
		New:    func() prototype.Prototype { return &FuelCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "recipe-category",
		Parent: prototype.RootKind,
		New:    func() prototype.Prototype { return &RecipeCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "resource-category",
		Parent: prototype.RootKind,
		New:    func() prototype.Prototype { return &ResourceCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "module-category",
		Parent: prototype.RootKind,
		New:    func() prototype.Prototype { return &ModuleCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "equipment-category",
		Parent: prototype.RootKind,
		New:    func() prototype.Prototype { return &EquipmentCategory{} },
	})
	b.Register(registry.KindSpec{
		Name:   "item-group",
		Parent: prototype.RootKind,
		Layer:  ItemGroupFields{},
		New:    func() prototype.Prototype { return &ItemGroup{} },
	})
	b.Register(registry.KindSpec{
		Name:   "item-subgroup",
		Parent: prototype.RootKind,
		Layer:  ItemSubgroupFields{},
		New:    func() prototype.Prototype { return &ItemSubgroup{} },
	})
	b.Register(registry.KindSpec{
		Name:   "virtual-signal",
		Parent: prototype.RootKind,
		Layer:  VirtualSignalFields{},
		New:    func() prototype.Prototype { return &VirtualSignal{} },
	})
}
