package fsutil_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/protocatalog/internal/fsutil"
	"github.com/specialistvlad/protocatalog/internal/testutil"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"b.yaml":            "",
		"a.yaml":            "",
		"notes.txt":         "",
		"nested/c.yaml":     "",
		".hidden/d.yaml":    "",
		"nested/.skip.yaml": "",
	})

	files, err := fsutil.FindFilesByExtension(root, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "b.yaml"),
		filepath.Join(root, "nested", "c.yaml"),
	}, files)

	_, err = fsutil.FindFilesByExtension(filepath.Join(root, "missing"), ".yaml")
	assert.Error(t, err)

	assert.Panics(t, func() { _, _ = fsutil.FindFilesByExtension(root, "") })
}
