package modlist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DependencyType is the relation a dependency string declares.
type DependencyType int

const (
	Required DependencyType = iota
	Optional
	OptionalHidden
	Incompatible
	// NoLoadOrder is required but does not constrain the load order.
	NoLoadOrder
)

func (d DependencyType) String() string {
	switch d {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case OptionalHidden:
		return "hidden optional"
	case Incompatible:
		return "incompatible"
	case NoLoadOrder:
		return "no load order"
	default:
		return "unknown"
	}
}

// Dependency is one parsed entry of info.json's dependencies list.
type Dependency struct {
	Type DependencyType
	Name string
	// Constraint is nil when the dependency accepts any version.
	Constraint *semver.Constraints
	Raw        string
}

// Orders reports whether the dependency places the mod after its target.
func (d Dependency) Orders() bool {
	return d.Type == Required || d.Type == Optional || d.Type == OptionalHidden
}

// Satisfied reports whether version meets the dependency's constraint.
func (d Dependency) Satisfied(version *semver.Version) bool {
	return d.Constraint == nil || d.Constraint.Check(version)
}

var dependencyRegex = regexp.MustCompile(
	`^(?:(?P<type>[!?~]|\(\?\)) *)?(?P<name>[a-zA-Z0-9_-](?:[a-zA-Z0-9 _-]*[a-zA-Z0-9_-])?)(?: *(?P<op>[<>=]=?) *(?P<version>(?:\d+\.){1,2}\d+))?$`,
)

// ParseDependency parses a dependency string.
func ParseDependency(raw string) (Dependency, error) {
	input := strings.TrimSpace(raw)
	m := dependencyRegex.FindStringSubmatch(input)
	if m == nil {
		return Dependency{}, fmt.Errorf("invalid dependency string %q", raw)
	}
	dep := Dependency{Raw: raw, Name: m[dependencyRegex.SubexpIndex("name")]}

	switch m[dependencyRegex.SubexpIndex("type")] {
	case "":
		dep.Type = Required
	case "!":
		dep.Type = Incompatible
	case "?":
		dep.Type = Optional
	case "(?)":
		dep.Type = OptionalHidden
	case "~":
		dep.Type = NoLoadOrder
	}

	op := m[dependencyRegex.SubexpIndex("op")]
	if op == "" {
		return dep, nil
	}
	version, err := sanitizeVersion(m[dependencyRegex.SubexpIndex("version")])
	if err != nil {
		return Dependency{}, fmt.Errorf("invalid version in dependency %q: %w", raw, err)
	}
	c, err := semver.NewConstraint(op + " " + version)
	if err != nil {
		return Dependency{}, fmt.Errorf("invalid version requirement in dependency %q: %w", raw, err)
	}
	dep.Constraint = c
	return dep, nil
}

// sanitizeVersion drops leading zeros, e.g. "1.01" becomes "1.1".
func sanitizeVersion(v string) (string, error) {
	parts := strings.Split(v, ".")
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", err
		}
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "."), nil
}
