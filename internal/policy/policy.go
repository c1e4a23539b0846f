// Package policy decides which prototype kinds may be overridden by a later
// mod, per load phase. The rules are external data, read from an HCL file:
//
//	non_overridable = ["damage-type"]
//
//	phase "data-final-fixes" {
//	  non_overridable = ["entity"]
//	}
//
//	phase "data-updates" {
//	  allow_override = false
//	}
//
// Naming an abstract kind protects every kind below it. Every kind and
// phase named by the file is checked against the registry when it loads.
package policy

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

type fileRoot struct {
	NonOverridable []string     `hcl:"non_overridable,optional"`
	Phases         []phaseBlock `hcl:"phase,block"`
}

type phaseBlock struct {
	Name           string   `hcl:"name,label"`
	AllowOverride  *bool    `hcl:"allow_override,optional"`
	NonOverridable []string `hcl:"non_overridable,optional"`
}

type kindSet map[prototype.Kind]struct{}

type phaseRule struct {
	allow *bool
	deny  kindSet
}

// Policy answers override questions. The zero value and a nil *Policy
// allow every override.
type Policy struct {
	deny   kindSet
	phases map[phase.Phase]phaseRule
}

// Default returns a policy that allows every override.
func Default() *Policy {
	return &Policy{}
}

// OverrideAllowed reports whether a prototype of kind may replace an
// existing one during phase p.
func (p *Policy) OverrideAllowed(kind prototype.Kind, ph phase.Phase) bool {
	if p == nil {
		return true
	}
	if rule, ok := p.phases[ph]; ok {
		if rule.allow != nil && !*rule.allow {
			return false
		}
		if _, denied := rule.deny[kind]; denied {
			return false
		}
	}
	_, denied := p.deny[kind]
	return !denied
}

// Load reads and validates a policy file.
func Load(path string, reg *registry.Registry) (*Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override policy: %w", err)
	}
	return Parse(src, path, reg)
}

// Parse decodes and validates policy source.
func Parse(src []byte, filename string, reg *registry.Registry) (*Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse override policy %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode override policy %s: %w", filename, diags)
	}

	var merr *multierror.Error
	p := &Policy{phases: make(map[phase.Phase]phaseRule)}
	p.deny = expand(reg, root.NonOverridable, "non_overridable", &merr)

	for _, pb := range root.Phases {
		ph, err := phase.Parse(pb.Name)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if _, dup := p.phases[ph]; dup {
			merr = multierror.Append(merr, fmt.Errorf("phase %q is configured more than once", ph))
			continue
		}
		p.phases[ph] = phaseRule{
			allow: pb.AllowOverride,
			deny:  expand(reg, pb.NonOverridable, fmt.Sprintf("phase %q non_overridable", ph), &merr),
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid override policy %s: %w", filename, err)
	}
	return p, nil
}

// expand resolves kind names to the set of kinds they cover.
func expand(reg *registry.Registry, names []string, where string, merr **multierror.Error) kindSet {
	set := make(kindSet)
	for _, name := range names {
		if _, err := reg.Lookup(name); err != nil {
			*merr = multierror.Append(*merr, fmt.Errorf("%s: %w", where, err))
			continue
		}
		kind := prototype.Kind(name)
		set[kind] = struct{}{}
		for _, k := range reg.ConcreteDescendants(kind) {
			set[k] = struct{}{}
		}
	}
	return set
}
