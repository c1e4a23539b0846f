package modlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
)

const (
	// InfoFile is the metadata file every mod directory holds.
	InfoFile = "info.json"
	// ListFile optionally enables or disables mods by name.
	ListFile = "mod-list.json"
)

// Mod is one discovered mod.
type Mod struct {
	Name         string
	Title        string
	Version      *semver.Version
	Dependencies []Dependency
	// Dir is the directory holding the mod's files.
	Dir string
}

type infoJSON struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Title        string   `json:"title"`
	Dependencies []string `json:"dependencies"`
}

type modListJSON struct {
	Mods []struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	} `json:"mods"`
}

// ReadInfo reads the info.json of the mod stored in dir.
func ReadInfo(dir string) (*Mod, error) {
	path := filepath.Join(dir, InfoFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var info infoJSON
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if info.Name == "" {
		return nil, fmt.Errorf("%s: name is required", path)
	}
	version, err := semver.NewVersion(info.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid version %q: %w", path, info.Version, err)
	}

	m := &Mod{Name: info.Name, Title: info.Title, Version: version, Dir: dir}
	var merr *multierror.Error
	for _, raw := range info.Dependencies {
		dep, err := ParseDependency(raw)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		m.Dependencies = append(m.Dependencies, dep)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Discover reads every mod directory directly below root. Directories
// without an info.json are ignored, as are mods disabled by mod-list.json.
func Discover(ctx context.Context, root string) ([]*Mod, error) {
	logger := ctxlog.FromContext(ctx)

	enabled, err := readModList(root)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read mods directory: %w", err)
	}

	var mods []*Mod
	seen := make(map[string]string)
	var merr *multierror.Error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, InfoFile)); errors.Is(err, os.ErrNotExist) {
			logger.Debug("Skipping directory without info.json.", "dir", dir)
			continue
		}

		m, err := ReadInfo(dir)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if on, listed := enabled[m.Name]; listed && !on {
			logger.Debug("Mod disabled by mod list.", "mod", m.Name)
			continue
		}
		if prev, dup := seen[m.Name]; dup {
			merr = multierror.Append(merr, fmt.Errorf("mod %q is provided by both %s and %s", m.Name, prev, dir))
			continue
		}
		seen[m.Name] = dir
		mods = append(mods, m)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	logger.Debug("Discovered mods.", "count", len(mods), "root", root)
	return mods, nil
}

func readModList(root string) (map[string]bool, error) {
	raw, err := os.ReadFile(filepath.Join(root, ListFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ListFile, err)
	}
	var list modListJSON
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ListFile, err)
	}
	enabled := make(map[string]bool, len(list.Mods))
	for _, m := range list.Mods {
		enabled[m.Name] = m.Enabled
	}
	return enabled, nil
}
