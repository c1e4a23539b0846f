package modules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/modules"
)

func TestRegistry_BuildsEveryCoreModule(t *testing.T) {
	reg, err := modules.Registry()
	require.NoError(t, err)

	tests := []struct {
		kind     prototype.Kind
		abstract bool
		chain    []prototype.Kind
	}{
		{kind: "item", chain: []prototype.Kind{prototype.RootKind, "item"}},
		{kind: "armor", chain: []prototype.Kind{prototype.RootKind, "item", "tool", "armor"}},
		{kind: "recipe", chain: []prototype.Kind{prototype.RootKind, "recipe"}},
		{kind: "entity", abstract: true, chain: []prototype.Kind{prototype.RootKind, "entity"}},
		{kind: "crafting-machine", abstract: true, chain: []prototype.Kind{prototype.RootKind, "entity", "entity-with-health", "entity-with-owner", "crafting-machine"}},
		{kind: "assembling-machine", chain: []prototype.Kind{prototype.RootKind, "entity", "entity-with-health", "entity-with-owner", "crafting-machine", "assembling-machine"}},
		{kind: "resource", chain: []prototype.Kind{prototype.RootKind, "entity", "resource"}},
		{kind: "mod-setting", abstract: true, chain: []prototype.Kind{prototype.RootKind, "mod-setting"}},
		{kind: "bool-setting", chain: []prototype.Kind{prototype.RootKind, "mod-setting", "bool-setting"}},
		{kind: "tile", chain: []prototype.Kind{prototype.RootKind, "tile"}},
		{kind: "fluid", chain: []prototype.Kind{prototype.RootKind, "fluid"}},
		{kind: "item-subgroup", chain: []prototype.Kind{prototype.RootKind, "item-subgroup"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			info, ok := reg.Kind(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.abstract, info.Abstract)
			assert.Equal(t, tt.chain, info.Chain)
		})
	}
}

func TestRegistry_AbstractEntityCoversMachines(t *testing.T) {
	reg, err := modules.Registry()
	require.NoError(t, err)

	assert.True(t, reg.IsA("furnace", "crafting-machine"))
	assert.True(t, reg.IsA("tree", "entity"))
	assert.False(t, reg.IsA("tree", "entity-with-owner"))
	assert.ElementsMatch(t, []prototype.Kind{"assembling-machine", "furnace"}, reg.ConcreteDescendants("crafting-machine"))
}
