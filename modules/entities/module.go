// Package entities registers the entity kind hierarchy: the abstract entity,
// entity-with-health, entity-with-owner and crafting-machine kinds, and the
// concrete machines, logistics and world entities below them.
package entities

import (
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kinds registered by this package.
const (
	KindEntity            prototype.Kind = "entity"
	KindEntityWithHealth  prototype.Kind = "entity-with-health"
	KindEntityWithOwner   prototype.Kind = "entity-with-owner"
	KindCraftingMachine   prototype.Kind = "crafting-machine"
	KindAssemblingMachine prototype.Kind = "assembling-machine"
	KindFurnace           prototype.Kind = "furnace"
	KindMiningDrill       prototype.Kind = "mining-drill"
	KindBoiler            prototype.Kind = "boiler"
	KindOffshorePump      prototype.Kind = "offshore-pump"
	KindContainer         prototype.Kind = "container"
	KindPipe              prototype.Kind = "pipe"
	KindStorageTank       prototype.Kind = "storage-tank"
	KindInserter          prototype.Kind = "inserter"
	KindTransportBelt     prototype.Kind = "transport-belt"
	KindResource          prototype.Kind = "resource"
	KindTree              prototype.Kind = "tree"
	KindSimpleEntity      prototype.Kind = "simple-entity"
)

// Register registers the entity kinds.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindEntity, Parent: prototype.RootKind, Layer: EntityFields{}})
	b.Register(registry.KindSpec{Name: KindEntityWithHealth, Parent: KindEntity, Layer: HealthFields{}})
	b.Register(registry.KindSpec{Name: KindEntityWithOwner, Parent: KindEntityWithHealth, Layer: OwnerFields{}})
	b.Register(registry.KindSpec{Name: KindCraftingMachine, Parent: KindEntityWithOwner, Layer: CraftingMachineFields{}})

	b.Register(registry.KindSpec{Name: KindAssemblingMachine, Parent: KindCraftingMachine, Layer: AssemblingMachineFields{}, New: func() prototype.Prototype { return &AssemblingMachine{} }})
	b.Register(registry.KindSpec{Name: KindFurnace, Parent: KindCraftingMachine, Layer: FurnaceFields{}, New: func() prototype.Prototype { return &Furnace{} }})
	b.Register(registry.KindSpec{Name: KindMiningDrill, Parent: KindEntityWithOwner, Layer: MiningDrillFields{}, New: func() prototype.Prototype { return &MiningDrill{} }})
	b.Register(registry.KindSpec{Name: KindBoiler, Parent: KindEntityWithOwner, Layer: BoilerFields{}, New: func() prototype.Prototype { return &Boiler{} }})
	b.Register(registry.KindSpec{Name: KindOffshorePump, Parent: KindEntityWithOwner, Layer: OffshorePumpFields{}, New: func() prototype.Prototype { return &OffshorePump{} }})
	b.Register(registry.KindSpec{Name: KindContainer, Parent: KindEntityWithOwner, Layer: ContainerFields{}, New: func() prototype.Prototype { return &Container{} }})
	b.Register(registry.KindSpec{Name: KindPipe, Parent: KindEntityWithOwner, Layer: PipeFields{}, New: func() prototype.Prototype { return &Pipe{} }})
	b.Register(registry.KindSpec{Name: KindStorageTank, Parent: KindEntityWithOwner, Layer: StorageTankFields{}, New: func() prototype.Prototype { return &StorageTank{} }})
	b.Register(registry.KindSpec{Name: KindInserter, Parent: KindEntityWithOwner, Layer: InserterFields{}, New: func() prototype.Prototype { return &Inserter{} }})
	b.Register(registry.KindSpec{Name: KindTransportBelt, Parent: KindEntityWithOwner, Layer: TransportBeltFields{}, New: func() prototype.Prototype { return &TransportBelt{} }})
	b.Register(registry.KindSpec{Name: KindResource, Parent: KindEntity, Layer: ResourceFields{}, New: func() prototype.Prototype { return &Resource{} }})
	b.Register(registry.KindSpec{Name: KindTree, Parent: KindEntityWithHealth, Layer: TreeFields{}, New: func() prototype.Prototype { return &Tree{} }})
	b.Register(registry.KindSpec{Name: KindSimpleEntity, Parent: KindEntityWithHealth, Layer: SimpleEntityFields{}, New: func() prototype.Prototype { return &SimpleEntity{} }})
}
