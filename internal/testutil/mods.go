package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mod describes a mod directory to write for a test.
type Mod struct {
	Name         string
	Version      string
	Dependencies []string
	// Scripts maps a load phase name, e.g. "data-updates", to HCL source.
	Scripts map[string]string
	// Locale maps a language to YAML locale source.
	Locale map[string]string
}

// WriteMods writes every mod into its own directory below root and returns root.
func WriteMods(t *testing.T, root string, mods ...Mod) string {
	t.Helper()
	for _, m := range mods {
		version := m.Version
		if version == "" {
			version = "1.0.0"
		}
		info, err := json.Marshal(map[string]any{
			"name":         m.Name,
			"version":      version,
			"dependencies": m.Dependencies,
		})
		require.NoError(t, err)

		files := map[string]string{filepath.Join(m.Name, "info.json"): string(info)}
		for phase, src := range m.Scripts {
			files[filepath.Join(m.Name, phase+".hcl")] = Unindent(src)
		}
		for lang, src := range m.Locale {
			files[filepath.Join(m.Name, "locale", lang+".yaml")] = Unindent(src)
		}
		WriteFiles(t, root, files)
	}
	return root
}

// WriteFiles writes files relative to root, creating directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}
