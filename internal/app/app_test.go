package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/app"
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/internal/testutil"
	"github.com/specialistvlad/protocatalog/modules/recipes"
)

func TestApp_Run(t *testing.T) {
	root := testutil.WriteMods(t, t.TempDir(),
		testutil.BaseMod(),
		testutil.Mod{
			Name:         "faster-gears",
			Dependencies: []string{"base"},
			Scripts: map[string]string{"data-updates": `
				extend "recipe" "iron-gear-wheel" {
				  energy_required = settings["gear-time"]
				}
			`},
		},
	)

	a, out, logs := app.SetupAppTest(t, &app.Config{
		ModsPath: root,
		Settings: map[string]string{"gear-time": "0.25"},
	})

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	p, ok := res.Table.Get(recipes.KindRecipe, "iron-gear-wheel")
	require.True(t, ok)
	assert.Equal(t, 0.25, p.(*recipes.Recipe).EnergyRequired)

	assert.Contains(t, out.String(), "Loaded 6 prototypes of 5 kinds.")
	assert.Contains(t, out.String(), "recipe/iron-gear-wheel: base -> faster-gears (data-updates)")
	assert.NotContains(t, out.String(), "Problems:")
	assert.Contains(t, logs.String(), "Mods loaded.")
}

func TestApp_RunReportsProblems(t *testing.T) {
	root := testutil.WriteMods(t, t.TempDir(),
		testutil.BaseMod(),
		testutil.Mod{
			Name: "broken",
			Scripts: map[string]string{"data": `
				prototype "recipe" "unobtainium-gear" {
				  ingredients = [["unobtainium", 1]]
				  result      = "iron-gear-wheel"
				}
			`},
		},
	)

	a, out, _ := app.SetupAppTest(t, &app.Config{ModsPath: root})
	res, err := a.Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Report.BrokenReferences)
	assert.Contains(t, out.String(), "Problems:")
	assert.Contains(t, out.String(), "unobtainium")
}

func TestApp_Mods(t *testing.T) {
	root := testutil.WriteMods(t, t.TempDir(),
		testutil.Mod{Name: "zeta", Dependencies: []string{"alpha"}},
		testutil.Mod{Name: "alpha"},
		testutil.BaseMod(),
	)

	a, _, _ := app.SetupAppTest(t, &app.Config{ModsPath: root})
	mods, err := a.Mods(context.Background())
	require.NoError(t, err)

	var names []string
	for _, m := range mods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"base", "alpha", "zeta"}, names)
}

func TestNewApp_PolicyFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"policy.hcl": `non_overridable = ["recipe"]`,
		"bad.hcl":    `non_overridable = ["no-such-kind"]`,
		"mods/.keep": "",
	})

	a, _, _ := app.SetupAppTest(t, &app.Config{ModsPath: filepath.Join(dir, "mods"), PolicyPath: filepath.Join(dir, "policy.hcl")})
	assert.True(t, a.Registry().Has(recipes.KindRecipe))

	_, err := app.NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, &app.Config{ModsPath: filepath.Join(dir, "mods"), PolicyPath: filepath.Join(dir, "bad.hcl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load override policy")
	assert.Contains(t, err.Error(), "no-such-kind")

	_, err = app.NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, &app.Config{ModsPath: filepath.Join(dir, "mods"), PolicyPath: filepath.Join(dir, "missing.hcl")})
	require.Error(t, err)
}

type brokenModule struct{}

func (brokenModule) Register(b *registry.Builder) {
	b.Register(registry.KindSpec{Name: "orphan", Parent: "no-such-parent"})
}

func TestNewApp_RegistryDefectPanics(t *testing.T) {
	assert.Panics(t, func() {
		app.SetupAppTest(t, &app.Config{ModsPath: t.TempDir()}, brokenModule{})
	})
}
