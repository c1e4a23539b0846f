// Package settings registers the mod setting kinds. Setting prototypes are
// defined like any other prototype; the loader reads their values to build
// the settings script variable.
package settings

import (
	"slices"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kinds registered by this package.
const (
	KindModSetting    prototype.Kind = "mod-setting"
	KindBoolSetting   prototype.Kind = "bool-setting"
	KindIntSetting    prototype.Kind = "int-setting"
	KindDoubleSetting prototype.Kind = "double-setting"
	KindStringSetting prototype.Kind = "string-setting"
)

// Setting is implemented by every concrete setting kind.
type Setting interface {
	prototype.Prototype
	// Value is the effective value: the forced value when set, else the default.
	Value() value.Value
}

// ModSettingFields is the layer shared by every setting kind.
type ModSettingFields struct {
	SettingType string `proto:"setting_type,required,oneof=startup|runtime-global|runtime-per-user"`
	Hidden      bool   `proto:"hidden"`
}

// BoolSettingFields is the layer of bool-setting.
type BoolSettingFields struct {
	DefaultValue bool  `proto:"default_value,required"`
	ForcedValue  *bool `proto:"forced_value"`
}

// BoolSetting is a checkbox setting.
type BoolSetting struct {
	prototype.PrototypeBase
	ModSettingFields
	BoolSettingFields
}

// CheckPrototype makes forced_value mandatory for hidden settings.
func (s *BoolSetting) CheckPrototype(*convert.Context) error {
	if s.Hidden && s.ForcedValue == nil {
		return convert.Missing("forced_value")
	}
	return nil
}

func (s *BoolSetting) Value() value.Value {
	if s.ForcedValue != nil {
		return value.Bool(*s.ForcedValue)
	}
	return value.Bool(s.DefaultValue)
}

// IntSettingFields is the layer of int-setting.
type IntSettingFields struct {
	DefaultValue  int64   `proto:"default_value,required"`
	MinimumValue  *int64  `proto:"minimum_value"`
	MaximumValue  *int64  `proto:"maximum_value"`
	AllowedValues []int64 `proto:"allowed_values"`
}

func (f *IntSettingFields) PostConvert(*convert.Context) error {
	if f.MinimumValue != nil && f.DefaultValue < *f.MinimumValue {
		return convert.Invalid("default_value", "%d is below minimum_value %d", f.DefaultValue, *f.MinimumValue)
	}
	if f.MaximumValue != nil && f.DefaultValue > *f.MaximumValue {
		return convert.Invalid("default_value", "%d is above maximum_value %d", f.DefaultValue, *f.MaximumValue)
	}
	if len(f.AllowedValues) > 0 && !slices.Contains(f.AllowedValues, f.DefaultValue) {
		return convert.Invalid("default_value", "%d is not one of allowed_values", f.DefaultValue)
	}
	return nil
}

// IntSetting is a whole number setting.
type IntSetting struct {
	prototype.PrototypeBase
	ModSettingFields
	IntSettingFields
}

func (s *IntSetting) Value() value.Value { return value.Int(s.DefaultValue) }

// DoubleSettingFields is the layer of double-setting.
type DoubleSettingFields struct {
	DefaultValue  float64   `proto:"default_value,required"`
	MinimumValue  *float64  `proto:"minimum_value"`
	MaximumValue  *float64  `proto:"maximum_value"`
	AllowedValues []float64 `proto:"allowed_values"`
}

func (f *DoubleSettingFields) PostConvert(*convert.Context) error {
	if f.MinimumValue != nil && f.DefaultValue < *f.MinimumValue {
		return convert.Invalid("default_value", "%g is below minimum_value %g", f.DefaultValue, *f.MinimumValue)
	}
	if f.MaximumValue != nil && f.DefaultValue > *f.MaximumValue {
		return convert.Invalid("default_value", "%g is above maximum_value %g", f.DefaultValue, *f.MaximumValue)
	}
	if len(f.AllowedValues) > 0 && !slices.Contains(f.AllowedValues, f.DefaultValue) {
		return convert.Invalid("default_value", "%g is not one of allowed_values", f.DefaultValue)
	}
	return nil
}

// DoubleSetting is a number setting.
type DoubleSetting struct {
	prototype.PrototypeBase
	ModSettingFields
	DoubleSettingFields
}

func (s *DoubleSetting) Value() value.Value { return value.Float(s.DefaultValue) }

// StringSettingFields is the layer of string-setting.
type StringSettingFields struct {
	DefaultValue  string   `proto:"default_value,required"`
	AllowBlank    bool     `proto:"allow_blank"`
	AutoTrim      bool     `proto:"auto_trim"`
	AllowedValues []string `proto:"allowed_values"`
}

func (f *StringSettingFields) PostConvert(*convert.Context) error {
	if f.DefaultValue == "" && !f.AllowBlank {
		return convert.Invalid("default_value", "must not be blank unless allow_blank is set")
	}
	if len(f.AllowedValues) > 0 && !slices.Contains(f.AllowedValues, f.DefaultValue) {
		return convert.BadVariant("default_value", f.DefaultValue, f.AllowedValues...)
	}
	return nil
}

// StringSetting is a text setting.
type StringSetting struct {
	prototype.PrototypeBase
	ModSettingFields
	StringSettingFields
}

func (s *StringSetting) Value() value.Value { return value.String(s.DefaultValue) }

// Register registers the setting kinds.
func (m *Module) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: KindModSetting, Parent: prototype.RootKind, Layer: ModSettingFields{}})
	b.Register(registry.KindSpec{Name: KindBoolSetting, Parent: KindModSetting, Layer: BoolSettingFields{}, New: func() prototype.Prototype { return &BoolSetting{} }})
	b.Register(registry.KindSpec{Name: KindIntSetting, Parent: KindModSetting, Layer: IntSettingFields{}, New: func() prototype.Prototype { return &IntSetting{} }})
	b.Register(registry.KindSpec{Name: KindDoubleSetting, Parent: KindModSetting, Layer: DoubleSettingFields{}, New: func() prototype.Prototype { return &DoubleSetting{} }})
	b.Register(registry.KindSpec{Name: KindStringSetting, Parent: KindModSetting, Layer: StringSettingFields{}, New: func() prototype.Prototype { return &StringSetting{} }})
}
