package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/testutil"
	"github.com/specialistvlad/protocatalog/internal/validate"
)

type ItemFields struct {
	StackSize   uint32 `proto:"stack_size"`
	BurntResult string `proto:"burnt_result,ref=item"`
}

type item struct {
	prototype.PrototypeBase
	ItemFields
}

type AmmoFields struct {
	Magazine float32 `proto:"magazine_size"`
}

type ammo struct {
	prototype.PrototypeBase
	ItemFields
	AmmoFields
}

type fluid struct {
	prototype.PrototypeBase
}

// ingredient names an item or a fluid depending on its type field.
type ingredient struct {
	Type   string `proto:"type,default=item"`
	Name   string `proto:"name"`
	Amount int    `proto:"amount"`
}

func (in *ingredient) References() []prototype.Reference {
	kind := prototype.Kind("item")
	if in.Type == "fluid" {
		kind = "fluid"
	}
	return []prototype.Reference{{Kind: kind, Name: in.Name, Field: "name"}}
}

type RecipeFields struct {
	Ingredients []ingredient          `proto:"ingredients"`
	Results     map[string]ingredient `proto:"results"`
}

type recipe struct {
	prototype.PrototypeBase
	RecipeFields
}

type fluidBox struct {
	Filter string `proto:"filter,ref=fluid"`
}

type EntityFields struct {
	Minable *ingredient `proto:"minable"`
}

type PumpFields struct {
	FluidBox  fluidBox   `proto:"fluid_box"`
	Extra     []fluidBox `proto:"extra_boxes"`
	Placeable []string   `proto:"placeable_by,ref=item"`
}

type pump struct {
	prototype.PrototypeBase
	EntityFields
	PumpFields
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	b.Register(registry.KindSpec{Name: prototype.RootKind, Layer: prototype.PrototypeBase{}})
	b.Register(registry.KindSpec{Name: "item", Parent: prototype.RootKind, Layer: ItemFields{}, New: func() prototype.Prototype { return &item{} }})
	b.Register(registry.KindSpec{Name: "ammo", Parent: "item", Layer: AmmoFields{}, New: func() prototype.Prototype { return &ammo{} }})
	b.Register(registry.KindSpec{Name: "fluid", Parent: prototype.RootKind, New: func() prototype.Prototype { return &fluid{} }})
	b.Register(registry.KindSpec{Name: "recipe", Parent: prototype.RootKind, Layer: RecipeFields{}, New: func() prototype.Prototype { return &recipe{} }})
	b.Register(registry.KindSpec{Name: "entity", Parent: prototype.RootKind, Layer: EntityFields{}})
	b.Register(registry.KindSpec{Name: "offshore-pump", Parent: "entity", Layer: PumpFields{}, New: func() prototype.Prototype { return &pump{} }})
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

func insert[T prototype.Identifiable](t *testing.T, tbl *datatable.Table, kind prototype.Kind, name string, p T) {
	t.Helper()
	p.SetIdentity(kind, name)
	_, err := tbl.Insert(kind, name, p)
	require.NoError(t, err)
}

func TestValidateAll_ReportsMissingFluid(t *testing.T) {
	reg := testRegistry(t)
	tbl := datatable.New()
	insert(t, tbl, "fluid", "water", &fluid{})
	insert(t, tbl, "offshore-pump", "pump-a", &pump{PumpFields: PumpFields{FluidBox: fluidBox{Filter: "crude-oil"}}})
	insert(t, tbl, "offshore-pump", "pump-b", &pump{PumpFields: PumpFields{FluidBox: fluidBox{Filter: "water"}}})
	tbl.Freeze()

	broken, err := validate.New(reg).ValidateAll(testutil.Context(t), tbl)
	require.NoError(t, err)
	require.Len(t, broken, 1)

	b := broken[0]
	assert.Equal(t, prototype.Kind("fluid"), b.TargetKind)
	assert.Equal(t, "crude-oil", b.TargetName)
	assert.Equal(t, prototype.Kind("offshore-pump"), b.FromKind)
	assert.Equal(t, "pump-a", b.FromName)
	assert.Equal(t, "fluid_box.filter", b.Path.String())
	assert.Contains(t, b.Error(), `references unknown fluid "crude-oil"`)
}

func TestValidateAll_CollectsEveryMiss(t *testing.T) {
	reg := testRegistry(t)
	tbl := datatable.New()
	insert(t, tbl, "item", "iron-plate", &item{})
	insert(t, tbl, "ammo", "firearm-magazine", &ammo{})
	insert(t, tbl, "recipe", "gear", &recipe{RecipeFields: RecipeFields{
		Ingredients: []ingredient{
			{Type: "item", Name: "iron-plate", Amount: 2},
			{Type: "item", Name: "copper-plate", Amount: 1},
			{Type: "fluid", Name: "steam", Amount: 10},
		},
		Results: map[string]ingredient{
			"main": {Type: "item", Name: "firearm-magazine"},
			"aux":  {Type: "item", Name: "gear"},
		},
	}})
	insert(t, tbl, "offshore-pump", "pump", &pump{
		EntityFields: EntityFields{Minable: &ingredient{Name: "pump"}},
		PumpFields: PumpFields{
			Extra:     []fluidBox{{Filter: ""}, {Filter: "lava"}},
			Placeable: []string{"iron-plate", "pump-item"},
		},
	})
	tbl.Freeze()

	broken, err := validate.New(reg).ValidateAll(testutil.Context(t), tbl)
	require.NoError(t, err)

	var got []string
	for _, b := range broken {
		got = append(got, b.FromName+" "+b.Path.String()+" -> "+string(b.TargetKind)+"/"+b.TargetName)
	}
	assert.Equal(t, []string{
		"gear ingredients[2].name -> item/copper-plate",
		"gear ingredients[3].name -> fluid/steam",
		"gear results.aux.name -> item/gear",
		"pump minable.name -> item/pump",
		"pump extra_boxes[2].filter -> fluid/lava",
		"pump placeable_by[2] -> item/pump-item",
	}, got)

	err = validate.Err(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6 errors occurred")
}

func TestValidateAll_AbstractTargets(t *testing.T) {
	reg := testRegistry(t)
	tbl := datatable.New()
	insert(t, tbl, "ammo", "magazine", &ammo{})
	insert(t, tbl, "item", "wood", &item{ItemFields: ItemFields{BurntResult: "magazine"}})
	tbl.Freeze()

	broken, err := validate.New(reg).ValidateAll(testutil.Context(t), tbl)
	require.NoError(t, err)
	assert.Empty(t, broken)
	assert.NoError(t, validate.Err(broken))
}

func TestValidateAll_RequiresFrozenTable(t *testing.T) {
	reg := testRegistry(t)
	_, err := validate.New(reg).ValidateAll(testutil.Context(t), datatable.New())
	require.ErrorIs(t, err, validate.ErrNotFrozen)
}
