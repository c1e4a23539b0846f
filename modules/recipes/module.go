// Package recipes registers the recipe and technology kinds.
package recipes

import (
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
	KindRecipe     prototype.Kind = "recipe"
	KindTechnology prototype.Kind = "technology"
)

// HandCraftingCategory is the category of recipes the player crafts by
// hand. Its recipes cannot use fluids.
const HandCraftingCategory = "crafting"

// RecipeFields is the layer of recipe.
type RecipeFields struct {
	types.IconSpecification
	Category                 string             `proto:"category,default=crafting,ref=recipe-category"`
	Subgroup                 string             `proto:"subgroup,ref=item-subgroup"`
	EnergyRequired           float64            `proto:"energy_required,default=0.5"`
	Ingredients              []types.Ingredient `proto:"ingredients,required"`
	Results                  []types.Product    `proto:"results"`
	Result                   string             `proto:"result"`
	ResultCount              uint16             `proto:"result_count,default=1"`
	MainProduct              string             `proto:"main_product"`
	Enabled                  bool               `proto:"enabled,default=true"`
	Hidden                   bool               `proto:"hidden"`
	HideFromStats            bool               `proto:"hide_from_stats"`
	AllowDecomposition       bool               `proto:"allow_decomposition,default=true"`
	AllowAsIntermediate      bool               `proto:"allow_as_intermediate,default=true"`
	AllowIntermediates       bool               `proto:"allow_intermediates,default=true"`
	AlwaysShowMadeIn         bool               `proto:"always_show_made_in"`
	AlwaysShowProducts       bool               `proto:"always_show_products"`
	RequesterPasteMultiplier uint32             `proto:"requester_paste_multiplier,default=30"`
	OverloadMultiplier       uint32             `proto:"overload_multiplier"`
	EmissionsMultiplier      float64            `proto:"emissions_multiplier,default=1"`
	CraftingMachineTint      *RecipeTint        `proto:"crafting_machine_tint"`
}

// RecipeTint colors the working visualisation of the machine crafting the recipe.
type RecipeTint struct {
	Primary    *types.Color `proto:"primary"`
	Secondary  *types.Color `proto:"secondary"`
	Tertiary   *types.Color `proto:"tertiary"`
	Quaternary *types.Color `proto:"quaternary"`
}

func (f *RecipeFields) PostConvert(*convert.Context) error {
	if f.EnergyRequired <= 0 {
		return convert.Invalid("energy_required", "must be positive, got %g", f.EnergyRequired)
	}
	if len(f.Results) == 0 {
		if f.Result == "" {
			return convert.Missing("result")
		}
		f.Results = []types.Product{types.ItemProduct(f.Result, float64(f.ResultCount))}
	}

	if f.Category == HandCraftingCategory {
		for _, in := range f.Ingredients {
			if in.IsFluid() {
				return convert.Invalid("ingredients", "%q recipes cannot use fluid %q", HandCraftingCategory, in.Name)
			}
		}
		for _, p := range f.Results {
			if p.Type == types.FluidType {
				return convert.Invalid("results", "%q recipes cannot produce fluid %q", HandCraftingCategory, p.Name)
			}
		}
	}

	if f.MainProduct != "" && !slices.ContainsFunc(f.Results, func(p types.Product) bool { return p.Name == f.MainProduct }) {
		return convert.Invalid("main_product", "%q is not one of the results", f.MainProduct)
	}
	if f.HasIcon() {
		return f.CheckIcon()
	}
	if len(f.Results) > 1 && f.MainProduct == "" {
		return convert.Missing("icon")
	}
	return nil
}

// Recipe turns ingredients into products.
type Recipe struct {
	prototype.PrototypeBase
	RecipeFields
}

// TechnologyUnit is the research cost of a technology.
type TechnologyUnit struct {
	Count        *uint64            `proto:"count"`
	CountFormula string             `proto:"count_formula"`
	Time         float64            `proto:"time,required"`
	Ingredients  []types.Ingredient `proto:"ingredients,required"`
}

func (u *TechnologyUnit) PostConvert(*convert.Context) error {
	switch {
	case u.Count == nil && u.CountFormula == "":
		return convert.Missing("count")
	case u.Count != nil && u.CountFormula != "":
		return convert.Invalid("count_formula", "count and count_formula are mutually exclusive")
	}
	if u.Time <= 0 {
		return convert.Invalid("time", "must be positive, got %g", u.Time)
	}
	return nil
}

// UnlockRecipe is the modifier type that enables a recipe.
const UnlockRecipe = "unlock-recipe"

// Modifier is one effect of a researched technology.
type Modifier struct {
	Type     string      `proto:"type,required"`
	Recipe   string      `proto:"recipe,ref=recipe"`
	Modifier value.Value `proto:"modifier"`
}

func (m *Modifier) PostConvert(*convert.Context) error {
	if m.Type == UnlockRecipe && m.Recipe == "" {
		return convert.Missing("recipe")
	}
	return nil
}

// TechnologyFields is the layer of technology.
type TechnologyFields struct {
	types.IconSpecification
	Unit                     TechnologyUnit `proto:"unit,required"`
	Prerequisites            []string       `proto:"prerequisites,ref=technology"`
	Effects                  []Modifier     `proto:"effects"`
	Enabled                  bool           `proto:"enabled,default=true"`
	Hidden                   bool           `proto:"hidden"`
	Upgrade                  bool           `proto:"upgrade"`
	VisibleWhenDisabled      bool           `proto:"visible_when_disabled"`
	IgnoreTechCostMultiplier bool           `proto:"ignore_tech_cost_multiplier"`
	// MaxLevel is a level number or "infinite".
	MaxLevel value.Value `proto:"max_level"`
}

func (f *TechnologyFields) PostConvert(*convert.Context) error {
	if err := f.CheckIcon(); err != nil {
		return err
	}
	if f.MaxLevel.IsNil() {
		return nil
	}
	if s, ok := f.MaxLevel.AsString(); ok && s == "infinite" {
		return nil
	}
	if n, ok := f.MaxLevel.AsInt(); ok && n > 0 {
		return nil
	}
	return convert.Invalid("max_level", "expected a positive level or \"infinite\", got %s", f.MaxLevel.Describe())
}

// Infinite reports whether the technology can be researched forever.
func (f *TechnologyFields) Infinite() bool {
	s, ok := f.MaxLevel.AsString()
	return ok && s == "infinite"
}

// UnlockedRecipes lists the recipes the technology enables, in effect order.
func (f *TechnologyFields) UnlockedRecipes() []string {
	var out []string
	for _, m := range f.Effects {
		if m.Type == UnlockRecipe {
			out = append(out, m.Recipe)
		}
	}
	return out
}

// Technology is a research.
type Technology struct {
	prototype.PrototypeBase
	TechnologyFields
}

// Register registers the recipe and technology kinds.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindRecipe, Parent: prototype.RootKind, Layer: RecipeFields{}, New: func() prototype.Prototype { return &Recipe{} }})
	b.Register(registry.KindSpec{Name: KindTechnology, Parent: prototype.RootKind, Layer: TechnologyFields{}, New: func() prototype.Prototype { return &Technology{} }})
}
