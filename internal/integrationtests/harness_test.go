package integrationtests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/app"
	"github.com/specialistvlad/protocatalog/internal/loader"
	"github.com/specialistvlad/protocatalog/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	App       *app.App
	Load      *loader.Result
	Output    string
	LogOutput string
	Err       error
}

// harnessOptions adds files next to the mods directory and adjusts the config.
type harnessOptions struct {
	// Policy is written to policy.hcl and used when not empty.
	Policy string
	// Locale is written to locale.yaml and used as the base locale when not empty.
	Locale   string
	Language string
	Settings map[string]string
}

// runIntegrationTest writes mods to a temporary directory and runs a full
// load through the application.
func runIntegrationTest(t *testing.T, opts harnessOptions, mods ...testutil.Mod) *harnessResult {
	t.Helper()

	// 1. Create a temporary root with a mods directory.
	root := t.TempDir()
	modsDir := filepath.Join(root, "mods")
	testutil.WriteMods(t, modsDir, mods...)

	// 2. Write the optional configuration files.
	cfg := app.Config{ModsPath: modsDir, Language: opts.Language, Settings: opts.Settings}
	if opts.Policy != "" {
		testutil.WriteFiles(t, root, map[string]string{"policy.hcl": testutil.Unindent(opts.Policy)})
		cfg.PolicyPath = filepath.Join(root, "policy.hcl")
	}
	if opts.Locale != "" {
		testutil.WriteFiles(t, root, map[string]string{"locale.yaml": testutil.Unindent(opts.Locale)})
		cfg.LocalePath = filepath.Join(root, "locale.yaml")
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// 3. Run the app.
	a, out, logs := app.SetupAppTest(t, validated)
	res, err := a.Run(context.Background())

	return &harnessResult{
		App:       a,
		Load:      res,
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
	}
}
