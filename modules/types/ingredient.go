package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Ingredient types.
const (
	ItemType  = "item"
	FluidType = "fluid"
)

// Ingredient is one input of a recipe or a research unit. It reads the short
// form {"iron-plate", 2} or a table with name, amount and an optional type.
// Item amounts are whole numbers; fluid amounts may be fractional.
type Ingredient struct {
	Type           string  `yaml:"type"`
	Name           string  `yaml:"name"`
	Amount         float64 `yaml:"amount"`
	CatalystAmount float64 `yaml:"catalyst_amount,omitempty"`

	// Fluid only.
	Temperature        *float64 `yaml:"temperature,omitempty"`
	MinimumTemperature *float64 `yaml:"minimum_temperature,omitempty"`
	MaximumTemperature *float64 `yaml:"maximum_temperature,omitempty"`
	FluidboxIndex      uint32   `yaml:"fluidbox_index,omitempty"`
}

func (in *Ingredient) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("ingredient table", v)
	}
	*in = Ingredient{Type: ItemType}

	if _, named := t.Field("name"); !named && t.IsSequence() {
		vals := t.Values()
		if len(vals) != 2 {
			return errors.New("short form ingredient needs exactly a name and an amount")
		}
		name, ok := vals[0].AsString()
		if !ok {
			return fmt.Errorf("ingredient name: %w", value.Mismatch("string", vals[0]))
		}
		amount, ok := vals[1].AsInt()
		if !ok {
			return fmt.Errorf("ingredient amount: %w", value.Mismatch("integer", vals[1]))
		}
		in.Name, in.Amount = name, float64(amount)
		return in.check()
	}

	r := fieldReader{t: t}
	in.Type = r.str("type", ItemType)
	in.Name = r.str("name", "")
	in.Amount = r.num("amount", 0)
	in.CatalystAmount = r.num("catalyst_amount", 0)
	in.Temperature = r.optNum("temperature")
	in.MinimumTemperature = r.optNum("minimum_temperature")
	in.MaximumTemperature = r.optNum("maximum_temperature")
	in.FluidboxIndex = r.u32("fluidbox_index", 0)
	if r.err != nil {
		return r.err
	}
	if _, ok := t.Field("amount"); !ok {
		return convert.Missing("amount")
	}
	return in.check()
}

func (in *Ingredient) check() error {
	if in.Name == "" {
		return convert.Missing("name")
	}
	switch in.Type {
	case ItemType:
		if in.Amount != math.Trunc(in.Amount) || in.Amount < 0 || in.Amount > math.MaxUint16 {
			return convert.Invalid("amount", "item amounts are whole numbers between 0 and %d, got %g", math.MaxUint16, in.Amount)
		}
		if in.Temperature != nil || in.MinimumTemperature != nil || in.MaximumTemperature != nil {
			return convert.Invalid("temperature", "item ingredients have no temperature")
		}
	case FluidType:
		if in.Amount < 0 {
			return convert.Invalid("amount", "must not be negative, got %g", in.Amount)
		}
	default:
		return convert.BadVariant("type", in.Type, ItemType, FluidType)
	}
	return nil
}

// IsFluid reports whether the ingredient names a fluid.
func (in *Ingredient) IsFluid() bool { return in.Type == FluidType }

// References implements prototype.Referencer.
func (in *Ingredient) References() []prototype.Reference {
	return []prototype.Reference{{Kind: prototype.Kind(in.Type), Name: in.Name, Field: "name"}}
}

// fieldReader reads optional typed fields of a table, keeping the first
// error so callers can check once.
type fieldReader struct {
	t   *value.Table
	err error
}

func (r *fieldReader) get(name string) (value.Value, bool) {
	if r.err != nil {
		return value.Nil(), false
	}
	v, ok := r.t.Field(name)
	if !ok || v.IsNil() {
		return value.Nil(), false
	}
	return v, true
}

func (r *fieldReader) str(name, def string) string {
	v, ok := r.get(name)
	if !ok {
		return def
	}
	s, isStr := v.AsString()
	if !isStr {
		r.err = mismatchAt(name, "string", v)
		return def
	}
	return s
}

func (r *fieldReader) num(name string, def float64) float64 {
	v, ok := r.get(name)
	if !ok {
		return def
	}
	n, isNum := v.AsFloat()
	if !isNum {
		r.err = mismatchAt(name, "number", v)
		return def
	}
	return n
}

func (r *fieldReader) u32(name string, def uint32) uint32 {
	v, ok := r.get(name)
	if !ok {
		return def
	}
	n, isInt := v.AsInt()
	if !isInt || n < 0 || n > math.MaxUint32 {
		r.err = mismatchAt(name, "uint32", v)
		return def
	}
	return uint32(n)
}

func (r *fieldReader) optNum(name string) *float64 {
	if _, ok := r.get(name); !ok {
		return nil
	}
	n := r.num(name, 0)
	if r.err != nil {
		return nil
	}
	return &n
}

func (r *fieldReader) boolean(name string, def bool) bool {
	v, ok := r.get(name)
	if !ok {
		return def
	}
	b, isBool := v.AsBool()
	if !isBool {
		r.err = mismatchAt(name, "boolean", v)
		return def
	}
	return b
}

func mismatchAt(field, expected string, got value.Value) error {
	return &convert.ConversionError{
		Reason:   convert.UnexpectedFieldType,
		Path:     fieldpath.Root.Field(field),
		Expected: expected,
		Actual:   got.Describe(),
	}
}
