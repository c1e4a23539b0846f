package settings_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules/modulestest"
	"github.com/specialistvlad/protocatalog/modules/settings"
)

func TestBoolSetting_Value(t *testing.T) {
	s := modulestest.MustConvert[*settings.BoolSetting](t, `
		prototype "bool-setting" "peaceful-start" {
		  setting_type  = "startup"
		  default_value = false
		}
	`)
	assert.Equal(t, value.Bool(false), s.Value())

	forced := modulestest.MustConvert[*settings.BoolSetting](t, `
		prototype "bool-setting" "peaceful-start" {
		  setting_type  = "startup"
		  default_value = false
		  hidden        = true
		  forced_value  = true
		}
	`)
	assert.Equal(t, value.Bool(true), forced.Value())
}

func TestBoolSetting_HiddenNeedsForcedValue(t *testing.T) {
	_, err := modulestest.Convert(t, `
		prototype "bool-setting" "peaceful-start" {
		  setting_type  = "startup"
		  default_value = false
		  hidden        = true
		}
	`)
	ce := modulestest.RequireError(t, err, convert.MissingRequiredField, "forced_value")
	assert.Equal(t, "bool-setting", string(ce.Kind))
}

func TestSettings_Rules(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		attrs  []string
		reason convert.Reason
		field  string
	}{
		{
			name:   "int below minimum",
			kind:   "int-setting",
			attrs:  []string{`setting_type = "startup"`, `default_value = 1`, `minimum_value = 2`},
			reason: convert.NestedConversionFailure,
			field:  "default_value",
		},
		{
			name:   "double not allowed",
			kind:   "double-setting",
			attrs:  []string{`setting_type = "runtime-global"`, `default_value = 0.5`, `allowed_values = [1, 2]`},
			reason: convert.NestedConversionFailure,
			field:  "default_value",
		},
		{
			name:   "string outside allowed values",
			kind:   "string-setting",
			attrs:  []string{`setting_type = "runtime-per-user"`, `default_value = "c"`, `allowed_values = ["a", "b"]`},
			reason: convert.UnknownEnumVariant,
			field:  "default_value",
		},
		{
			name:   "blank string",
			kind:   "string-setting",
			attrs:  []string{`setting_type = "startup"`, `default_value = ""`},
			reason: convert.NestedConversionFailure,
			field:  "default_value",
		},
		{
			name:   "unknown setting type",
			kind:   "int-setting",
			attrs:  []string{`setting_type = "sometimes"`, `default_value = 1`},
			reason: convert.UnknownEnumVariant,
			field:  "setting_type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fmt.Sprintf("prototype %q \"x\" {\n%s\n}\n", tt.kind, strings.Join(tt.attrs, "\n"))
			_, err := modulestest.Convert(t, src)
			modulestest.RequireError(t, err, tt.reason, tt.field)
		})
	}
}

func TestSetting_Interface(t *testing.T) {
	var s settings.Setting = modulestest.MustConvert[*settings.IntSetting](t, `
		prototype "int-setting" "belt-speed" {
		  setting_type  = "startup"
		  default_value = 3
		  maximum_value = 10
		}
	`)
	assert.Equal(t, value.Int(3), s.Value())
	assert.Equal(t, "belt-speed", s.Name())
}
