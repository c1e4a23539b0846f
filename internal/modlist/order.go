package modlist

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/protocatalog/internal/dag"
)

// BaseMod is the mod every other mod implicitly loads after.
const BaseMod = "base"

// DependencyError reports an unmet dependency declaration.
type DependencyError struct {
	Mod        string
	Dependency Dependency
	Reason     string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("mod %q: dependency %q: %s", e.Mod, e.Dependency.Raw, e.Reason)
}

// LoadOrder checks every dependency declaration and returns mods in the
// order they load. All unmet dependencies are reported together.
func LoadOrder(mods []*Mod) ([]*Mod, error) {
	byName := make(map[string]*Mod, len(mods))
	g := dag.New()
	for _, m := range mods {
		if _, dup := byName[m.Name]; dup {
			return nil, fmt.Errorf("mod %q is listed more than once", m.Name)
		}
		byName[m.Name] = m
		g.AddNode(m.Name)
	}

	var merr *multierror.Error
	for _, m := range mods {
		mentionsBase := false
		for _, dep := range m.Dependencies {
			if dep.Name == BaseMod {
				mentionsBase = true
			}
			target, present := byName[dep.Name]

			switch {
			case dep.Type == Incompatible:
				if present {
					merr = multierror.Append(merr, &DependencyError{Mod: m.Name, Dependency: dep, Reason: "incompatible mod is active"})
				}
				continue
			case !present:
				if dep.Type == Required || dep.Type == NoLoadOrder {
					merr = multierror.Append(merr, &DependencyError{Mod: m.Name, Dependency: dep, Reason: "mod is not active"})
				}
				continue
			case !dep.Satisfied(target.Version):
				merr = multierror.Append(merr, &DependencyError{
					Mod: m.Name, Dependency: dep,
					Reason: fmt.Sprintf("version %s does not satisfy %s", target.Version, dep.Constraint),
				})
				continue
			}

			if dep.Orders() {
				if err := g.AddEdge(dep.Name, m.Name); err != nil {
					merr = multierror.Append(merr, fmt.Errorf("mod %q: %w", m.Name, err))
				}
			}
		}

		if !mentionsBase && m.Name != BaseMod && g.Has(BaseMod) {
			if err := g.AddEdge(BaseMod, m.Name); err != nil {
				merr = multierror.Append(merr, err)
			}
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	names, err := g.TopologicalSort(NaturalCompare)
	if err != nil {
		return nil, fmt.Errorf("mods have circular dependencies: %w", err)
	}
	ordered := make([]*Mod, len(names))
	for i, name := range names {
		ordered[i] = byName[name]
	}
	return ordered, nil
}
