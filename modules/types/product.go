package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Product is one output of a recipe or of mining. It reads the short form
// {"iron-gear-wheel", 1} or a table with either amount or amount_min and
// amount_max.
type Product struct {
	Type           string   `yaml:"type"`
	Name           string   `yaml:"name"`
	Amount         *float64 `yaml:"amount,omitempty"`
	AmountMin      float64  `yaml:"amount_min,omitempty"`
	AmountMax      float64  `yaml:"amount_max,omitempty"`
	Probability    float64  `yaml:"probability"`
	CatalystAmount float64  `yaml:"catalyst_amount,omitempty"`
	// ShowDetails is show_details_in_recipe_tooltip.
	ShowDetails bool `yaml:"show_details_in_recipe_tooltip"`

	// Fluid only.
	Temperature   *float64 `yaml:"temperature,omitempty"`
	FluidboxIndex uint32   `yaml:"fluidbox_index,omitempty"`
}

// ItemProduct builds a fixed amount item product.
func ItemProduct(name string, amount float64) Product {
	return Product{Type: ItemType, Name: name, Amount: &amount, Probability: 1, ShowDetails: true}
}

func (p *Product) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("product table", v)
	}

	if _, named := t.Field("name"); !named && t.IsSequence() {
		vals := t.Values()
		if len(vals) != 2 {
			return errors.New("short form product needs exactly a name and an amount")
		}
		name, ok := vals[0].AsString()
		if !ok {
			return fmt.Errorf("product name: %w", value.Mismatch("string", vals[0]))
		}
		amount, ok := vals[1].AsInt()
		if !ok {
			return fmt.Errorf("product amount: %w", value.Mismatch("integer", vals[1]))
		}
		*p = ItemProduct(name, float64(amount))
		return p.check()
	}

	r := fieldReader{t: t}
	*p = Product{
		Type:           r.str("type", ItemType),
		Name:           r.str("name", ""),
		Amount:         r.optNum("amount"),
		AmountMin:      r.num("amount_min", 0),
		AmountMax:      r.num("amount_max", 0),
		Probability:    r.num("probability", 1),
		CatalystAmount: r.num("catalyst_amount", 0),
		ShowDetails:    r.boolean("show_details_in_recipe_tooltip", true),
		Temperature:    r.optNum("temperature"),
		FluidboxIndex:  r.u32("fluidbox_index", 0),
	}
	if r.err != nil {
		return r.err
	}
	if p.Amount == nil {
		if _, ok := t.Field("amount_min"); !ok {
			return convert.Missing("amount_min")
		}
		if _, ok := t.Field("amount_max"); !ok {
			return convert.Missing("amount_max")
		}
	}
	return p.check()
}

func (p *Product) check() error {
	if p.Name == "" {
		return convert.Missing("name")
	}
	if p.Type != ItemType && p.Type != FluidType {
		return convert.BadVariant("type", p.Type, ItemType, FluidType)
	}
	if p.Probability < 0 || p.Probability > 1 {
		return convert.Invalid("probability", "must be in a range of [0; 1], got %g", p.Probability)
	}
	if p.Amount != nil {
		if *p.Amount < 0 {
			return convert.Invalid("amount", "must not be negative, got %g", *p.Amount)
		}
		if p.Type == ItemType && *p.Amount != math.Trunc(*p.Amount) {
			return convert.Invalid("amount", "item amounts are whole numbers, got %g", *p.Amount)
		}
		return nil
	}
	if p.AmountMax < p.AmountMin {
		p.AmountMax = p.AmountMin
	}
	return nil
}

// Expected returns the average amount produced per craft.
func (p *Product) Expected() float64 {
	amount := (p.AmountMin + p.AmountMax) / 2
	if p.Amount != nil {
		amount = *p.Amount
	}
	return amount * p.Probability
}

// References implements prototype.Referencer.
func (p *Product) References() []prototype.Reference {
	return []prototype.Reference{{Kind: prototype.Kind(p.Type), Name: p.Name, Field: "name"}}
}

// MinableProperties describes what mining an entity or tile yields. The
// result and count shorthand is folded into results.
type MinableProperties struct {
	MiningTime     float64   `proto:"mining_time,required"`
	Results        []Product `proto:"results"`
	Result         string    `proto:"result,ref=item"`
	Count          uint16    `proto:"count,default=1"`
	FluidAmount    float64   `proto:"fluid_amount"`
	RequiredFluid  string    `proto:"required_fluid,ref=fluid"`
	MiningParticle string    `proto:"mining_particle"`
}

func (m *MinableProperties) PostConvert(*convert.Context) error {
	if m.MiningTime <= 0 {
		return convert.Invalid("mining_time", "must be positive, got %g", m.MiningTime)
	}
	if len(m.Results) == 0 {
		if m.Result == "" {
			return convert.Missing("result")
		}
		m.Results = []Product{ItemProduct(m.Result, float64(m.Count))}
	}
	if m.FluidAmount > 0 && m.RequiredFluid == "" {
		return convert.Missing("required_fluid")
	}
	return nil
}

// Loot is an item dropped when an entity dies.
type Loot struct {
	Item        string  `proto:"item,required,ref=item"`
	Probability float64 `proto:"probability,default=1"`
	CountMin    float64 `proto:"count_min,default=1"`
	CountMax    float64 `proto:"count_max,default=1"`
}

func (l *Loot) PostConvert(*convert.Context) error {
	if l.CountMax <= 0 {
		return convert.Invalid("count_max", "must be positive, got %g", l.CountMax)
	}
	return nil
}
