package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

type stub struct{ prototype.PrototypeBase }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	newStub := func() prototype.Prototype { return &stub{} }
	b := registry.NewBuilder()
	b.Register(registry.KindSpec{Name: prototype.RootKind, Layer: prototype.PrototypeBase{}})
	b.Register(registry.KindSpec{Name: "damage-type", Parent: prototype.RootKind, New: newStub})
	b.Register(registry.KindSpec{Name: "fluid", Parent: prototype.RootKind, New: newStub})
	b.Register(registry.KindSpec{Name: "entity", Parent: prototype.RootKind})
	b.Register(registry.KindSpec{Name: "pipe", Parent: "entity", New: newStub})
	b.Register(registry.KindSpec{Name: "boiler", Parent: "entity", New: newStub})
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

func TestDefaultAllowsEverything(t *testing.T) {
	for _, p := range []*Policy{Default(), nil} {
		for _, ph := range phase.All() {
			assert.True(t, p.OverrideAllowed("fluid", ph))
		}
	}
}

func TestParse(t *testing.T) {
	src := `
non_overridable = ["damage-type"]

phase "data-updates" {
  non_overridable = ["entity"]
}

phase "data-final-fixes" {
  allow_override = false
}
`
	p, err := Parse([]byte(src), "policy.hcl", testRegistry(t))
	require.NoError(t, err)

	testCases := []struct {
		kind  prototype.Kind
		phase phase.Phase
		want  bool
	}{
		{"damage-type", phase.Data, false},
		{"damage-type", phase.Updates, false},
		{"fluid", phase.Data, true},
		{"fluid", phase.Updates, true},
		{"pipe", phase.Data, true},
		{"pipe", phase.Updates, false},
		{"boiler", phase.Updates, false},
		{"fluid", phase.FinalFixes, false},
		{"pipe", phase.FinalFixes, false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.kind)+"/"+string(tc.phase), func(t *testing.T) {
			assert.Equal(t, tc.want, p.OverrideAllowed(tc.kind, tc.phase))
		})
	}
}

func TestParse_ValidatesAgainstRegistry(t *testing.T) {
	src := `
non_overridable = ["damage-type", "spaceship"]

phase "data-late" {
}

phase "data-updates" {
  non_overridable = ["warp-drive"]
}

phase "data-updates" {
}
`
	_, err := Parse([]byte(src), "policy.hcl", testRegistry(t))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `"spaceship"`)
	assert.Contains(t, msg, `data-late`)
	assert.Contains(t, msg, `"warp-drive"`)
	assert.Contains(t, msg, `phase "data-updates" is configured more than once`)
	assert.ErrorIs(t, err, registry.ErrUnknownKind)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`non_overridable = [`), "policy.hcl", testRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse override policy")

	_, err = Parse([]byte(`allow = true`), "policy.hcl", testRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode override policy")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`non_overridable = ["fluid"]`), 0o644))

	p, err := Load(path, testRegistry(t))
	require.NoError(t, err)
	assert.False(t, p.OverrideAllowed("fluid", phase.Data))

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"), testRegistry(t))
	require.Error(t, err)
}
