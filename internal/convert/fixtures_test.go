package convert_test

import (
	"errors"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
)

type sprite struct {
	Filename   string   `proto:"filename"`
	Layers     []sprite `proto:"layers"`
	FrameCount uint32   `proto:"frame_count,default=1"`
}

func (s *sprite) PostConvert(*convert.Context) error {
	if s.Filename == "" && len(s.Layers) == 0 {
		return convert.Missing("filename")
	}
	return nil
}

type graphicsSet struct {
	Animation *sprite `proto:"animation"`
}

// ingredient reads either {"iron-plate", 2} or {name = "iron-plate", amount = 2}.
type ingredient struct {
	Name   string
	Amount int64
}

func (in *ingredient) DecodeValue(v value.Value) error {
	t, ok := v.AsTable()
	if !ok {
		return value.Mismatch("ingredient table", v)
	}
	if t.IsSequence() {
		vals := t.Values()
		if len(vals) != 2 {
			return errors.New("short form ingredient needs exactly a name and an amount")
		}
		name, okName := vals[0].AsString()
		amount, okAmount := vals[1].AsInt()
		if !okName || !okAmount {
			return errors.New("short form ingredient is {name, amount}")
		}
		in.Name, in.Amount = name, amount
		return nil
	}
	name, _ := t.Field("name")
	amount, _ := t.Field("amount")
	in.Name, _ = name.AsString()
	in.Amount, _ = amount.AsInt()
	if in.Name == "" {
		return convert.Missing("name")
	}
	return nil
}

type MachineFields struct {
	CraftingSpeed float64            `proto:"crafting_speed,required"`
	Categories    []string           `proto:"crafting_categories,required,ref=recipe-category"`
	GraphicsSet   *graphicsSet       `proto:"graphics_set"`
	Flags         []string           `proto:"flags,single,oneof=placeable-neutral|player-creation"`
	Priority      string             `proto:"priority,default=medium,oneof=low|medium|high"`
	MaxHealth     float32            `proto:"max_health,default=10"`
	Effects       map[string]float64 `proto:"effects"`
	Extra         value.Value        `proto:"extra"`
	Hidden        bool               `proto:"hidden"`
	ModuleSlots   uint8              `proto:"module_slots"`
}

func (m *MachineFields) PostConvert(*convert.Context) error {
	if m.Hidden && len(m.Flags) > 0 {
		return convert.Invalid("flags", "hidden machines cannot carry flags")
	}
	return nil
}

type machine struct {
	prototype.PrototypeBase
	MachineFields
}

type RecipeFields struct {
	EnergyRequired float64      `proto:"energy_required,default=0.5"`
	Ingredients    []ingredient `proto:"ingredients,required"`
	ResultCount    uint16       `proto:"result_count,default=1"`
	// MaxCount derives from ResultCount when absent.
	MaxCount *uint16 `proto:"max_count"`
}

func (r *RecipeFields) PostConvert(*convert.Context) error {
	if r.MaxCount == nil {
		n := r.ResultCount
		r.MaxCount = &n
	}
	return nil
}

type recipe struct {
	prototype.PrototypeBase
	RecipeFields
}

// CheckPrototype sees MaxCount after the layer hook derived it.
func (r *recipe) CheckPrototype(*convert.Context) error {
	if *r.MaxCount < r.ResultCount {
		return convert.Invalid("max_count", "must be at least result_count %d", r.ResultCount)
	}
	return nil
}

type category struct {
	prototype.PrototypeBase
}

func testRegistry() *registry.Registry {
	b := registry.NewBuilder()
	b.Register(registry.KindSpec{Name: prototype.RootKind, Layer: prototype.PrototypeBase{}})
	b.Register(registry.KindSpec{Name: "recipe-category", Parent: prototype.RootKind, New: func() prototype.Prototype { return &category{} }})
	b.Register(registry.KindSpec{Name: "recipe", Parent: prototype.RootKind, Layer: RecipeFields{}, New: func() prototype.Prototype { return &recipe{} }})
	b.Register(registry.KindSpec{Name: "entity", Parent: prototype.RootKind})
	b.Register(registry.KindSpec{Name: "assembling-machine", Parent: "entity", Layer: MachineFields{}, New: func() prototype.Prototype { return &machine{} }})
	return b.MustBuild()
}

func tbl() *value.Table { return value.NewTable() }

func seq(vs ...value.Value) value.Value { return value.TableOf(value.Sequence(vs...)) }

func str(s string) value.Value { return value.String(s) }

func num(n int64) value.Value { return value.Int(n) }

func validMachine() *value.Table {
	return tbl().
		SetField("type", str("assembling-machine")).
		SetField("name", str("assembler")).
		SetField("crafting_speed", value.Float(0.75)).
		SetField("crafting_categories", seq(str("crafting")))
}

func ironGearWheel(energy float64) *value.Table {
	return tbl().
		SetField("energy_required", value.Float(energy)).
		SetField("ingredients", seq(seq(str("iron-plate"), num(2))))
}
