package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Script is the source of one mod for one load phase.
type Script struct {
	Mod      string
	Phase    phase.Phase
	Filename string
	Source   []byte
}

// Environment is what a running script can see.
type Environment struct {
	Mod     string
	Version string
	Phase   phase.Phase
	// Mods maps every active mod to its version.
	Mods map[string]string
	// Settings holds startup setting values by name.
	Settings map[string]value.Value
	// Raw is the shared kind -> name -> fields table as left by every
	// script that ran before this one. Executors must not modify it.
	Raw *value.Table
}

// Executor runs data-stage scripts.
type Executor interface {
	Execute(ctx context.Context, s *Script, env *Environment) (value.Value, error)
}

// ExecutionError reports a script that could not run to completion.
type ExecutionError struct {
	Mod      string
	Phase    phase.Phase
	Message  string
	Location string
}

func (e *ExecutionError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("mod %q, phase %s: %s", e.Mod, e.Phase, e.Message)
	}
	return fmt.Sprintf("mod %q, phase %s: %s: %s", e.Mod, e.Phase, e.Location, e.Message)
}

// Source locates the script a mod provides for a phase.
type Source interface {
	// Open returns nil, nil when the mod has no script for the phase.
	Open(mod, dir string, p phase.Phase) (*Script, error)
}

// FileSource reads scripts named after the phase from the mod directory,
// e.g. data-updates.hcl.
type FileSource struct {
	Extension string
}

// Open implements Source.
func (fs FileSource) Open(mod, dir string, p phase.Phase) (*Script, error) {
	path := filepath.Join(dir, string(p)+fs.Extension)
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read script for mod %q: %w", mod, err)
	}
	return &Script{Mod: mod, Phase: p, Filename: path, Source: src}, nil
}
