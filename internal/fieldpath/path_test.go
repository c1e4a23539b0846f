// internal/fieldpath/path_test.go
package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	testCases := []struct {
		name        string
		path        Path
		expectedStr string
	}{
		{
			name:        "simple path",
			path:        Root.Field("a").Field("b"),
			expectedStr: "a.b",
		},
		{
			name:        "path with indices",
			path:        Root.Field("graphics_set").Field("animation").Field("layers").Index(2).Field("filename"),
			expectedStr: "graphics_set.animation.layers[2].filename",
		},
		{
			name:        "nested sequence",
			path:        Root.Field("collision_box").Index(1).Index(2),
			expectedStr: "collision_box[1][2]",
		},
		{
			name:        "root",
			path:        Root,
			expectedStr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.path.String())
		})
	}
}

func TestPath_DoesNotMutateReceiver(t *testing.T) {
	base := Root.Field("ingredients")
	first := base.Index(1)
	second := base.Index(2)

	assert.Equal(t, "ingredients", base.String())
	assert.Equal(t, "ingredients[1]", first.String())
	assert.Equal(t, "ingredients[2]", second.String())
}

func TestPath_RoundTrip(t *testing.T) {
	testIDs := []string{
		"a.b.c",
		"graphics_set.animation.layers[2].filename",
		"selection_box[1][2]",
		"fluid_box.pipe_connections[1].position",
	}

	for _, id := range testIDs {
		t.Run(id, func(t *testing.T) {
			p, err := Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, p.String())

			again, err := Parse(p.String())
			require.NoError(t, err)
			assert.True(t, p.Equal(again))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, raw := range []string{"", "a..b", "a.[1]", "a b", "a[x]"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			assert.Error(t, err)
		})
	}
}

func TestPath_Equal(t *testing.T) {
	p1, _ := Parse("a.b[1]")
	p2, _ := Parse("a.b[1]")
	p3, _ := Parse("a.b[2]")

	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))
	assert.False(t, p1.Equal(nil))
	assert.True(t, Root.Equal(nil))
}
