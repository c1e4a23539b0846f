// Package modulestest runs HCL prototype definitions through the script
// executor and the conversion engine with every core module registered.
package modulestest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/convert"
	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/script"
	"github.com/specialistvlad/protocatalog/internal/script/hclscript"
	"github.com/specialistvlad/protocatalog/internal/testutil"
	"github.com/specialistvlad/protocatalog/internal/value"
	"github.com/specialistvlad/protocatalog/modules"
)

var (
	regOnce sync.Once
	reg     *registry.Registry
	regErr  error
)

// Registry returns the registry of every core module, built once per test binary.
func Registry(t *testing.T) *registry.Registry {
	t.Helper()
	regOnce.Do(func() { reg, regErr = modules.Registry() })
	require.NoError(t, regErr)
	return reg
}

// Execute runs src as the data script of a mod named test-mod.
func Execute(t *testing.T, src string) value.Value {
	t.Helper()
	s := &script.Script{Mod: "test-mod", Phase: phase.Data, Filename: "data.hcl", Source: []byte(testutil.Unindent(src))}
	tree, err := hclscript.New().Execute(testutil.Context(t), s, &script.Environment{Mod: "test-mod", Phase: phase.Data})
	require.NoError(t, err)
	return tree
}

// Convert runs src, which must define exactly one prototype, and converts it.
func Convert(t *testing.T, src string) (prototype.Prototype, error) {
	t.Helper()
	kinds, ok := Execute(t, src).AsTable()
	require.True(t, ok)
	require.Equal(t, 1, kinds.Len(), "expected a single kind")
	ke := kinds.Entries()[0]
	names, ok := ke.Value.AsTable()
	require.True(t, ok)
	require.Equal(t, 1, names.Len(), "expected a single prototype")
	ne := names.Entries()[0]

	e := convert.New(Registry(t))
	return e.Convert(testutil.Context(t), &convert.Context{Mod: "test-mod", Phase: phase.Data}, ke.Key.String(), ne.Key.String(), ne.Value)
}

// MustConvert is Convert for definitions expected to be valid.
func MustConvert[T prototype.Prototype](t *testing.T, src string) T {
	t.Helper()
	p, err := Convert(t, src)
	require.NoError(t, err)
	out, ok := p.(T)
	require.True(t, ok, "unexpected prototype type %T", p)
	return out
}

// ConvertTree runs src and converts every definition it produces.
func ConvertTree(t *testing.T, src string) (*convert.TreeResult, error) {
	t.Helper()
	e := convert.New(Registry(t))
	return e.ConvertTree(testutil.Context(t), &convert.Context{Mod: "test-mod", Phase: phase.Data}, Execute(t, src))
}

// RequireError asserts err is a conversion error with reason at field.
func RequireError(t *testing.T, err error, reason convert.Reason, field string) *convert.ConversionError {
	t.Helper()
	require.Error(t, err)
	var ce *convert.ConversionError
	require.ErrorAs(t, err, &ce, "unexpected error: %v", err)
	require.Equal(t, reason, ce.Reason, "error: %v", err)
	require.Equal(t, field, ce.Field(), "error: %v", err)
	return ce
}
