package convert

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/fieldpath"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// TreeResult holds the outcome of converting one mod's value tree.
type TreeResult struct {
	// Prototypes are the successfully converted instances in tree order.
	Prototypes []prototype.Prototype
	// Errors holds one error per definition that failed, in tree order.
	Errors []error
}

type job struct {
	kind string
	name string
	node value.Value
	err  error
}

// ConvertTree converts every definition of a kind -> name -> fields tree.
// A tree of the wrong shape fails with a *StructuralError and a tree naming
// unregistered or abstract kinds fails with every *UnknownPrototypeTypeError
// found; in both cases nothing is converted. Otherwise each definition
// converts independently and failures are reported in TreeResult.Errors.
// Definitions convert in parallel but results keep tree order.
func (e *Engine) ConvertTree(ctx context.Context, cc *Context, tree value.Value) (*TreeResult, error) {
	if cc == nil {
		cc = &Context{}
	}
	logger := ctxlog.FromContext(ctx)

	jobs, err := e.plan(cc, tree)
	if err != nil {
		return nil, err
	}

	converted := make([]prototype.Prototype, len(jobs))
	failures := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		if j.err != nil {
			failures[i] = j.err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			converted[i], failures[i] = e.Convert(gctx, cc, j.kind, j.name, j.node)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conversion of mod %q interrupted: %w", cc.Mod, err)
	}

	res := &TreeResult{}
	for i := range jobs {
		if failures[i] != nil {
			res.Errors = append(res.Errors, failures[i])
			continue
		}
		res.Prototypes = append(res.Prototypes, converted[i])
	}
	logger.Debug("Converted prototype tree.", "prototypes", len(res.Prototypes), "failed", len(res.Errors))
	return res, nil
}

// plan checks the tree shape and lists the definitions to convert.
func (e *Engine) plan(cc *Context, tree value.Value) ([]job, error) {
	top, ok := tree.AsTable()
	if !ok {
		return nil, &StructuralError{Mod: cc.Mod, Message: fmt.Sprintf("expected a table keyed by prototype kind, got %s", tree.Describe())}
	}

	var jobs []job
	var unknown error
	seenKinds := make(map[string]bool)

	for i, ke := range top.Entries() {
		kind, isStr := ke.Key.Str()
		if !isStr {
			return nil, &StructuralError{Mod: cc.Mod, Path: fieldpath.Root.Index(i + 1).String(), Message: fmt.Sprintf("prototype kind keys must be strings, got integer %s", ke.Key)}
		}
		if seenKinds[kind] {
			return nil, &StructuralError{Mod: cc.Mod, Path: kind, Message: "prototype kind appears more than once"}
		}
		seenKinds[kind] = true

		names, ok := ke.Value.AsTable()
		if !ok {
			return nil, &StructuralError{Mod: cc.Mod, Path: kind, Message: fmt.Sprintf("expected a table keyed by prototype name, got %s", ke.Value.Describe())}
		}

		info, err := e.reg.Lookup(kind)
		if err != nil {
			unknown = multierror.Append(unknown, &UnknownPrototypeTypeError{Mod: cc.Mod, Kind: kind})
			continue
		}
		if info.Abstract {
			unknown = multierror.Append(unknown, &UnknownPrototypeTypeError{Mod: cc.Mod, Kind: kind, Abstract: true})
			continue
		}

		seenNames := make(map[string]bool)
		for j, ne := range names.Entries() {
			name, isStr := ne.Key.Str()
			if !isStr {
				return nil, &StructuralError{Mod: cc.Mod, Path: fieldpath.Root.Field(kind).Index(j + 1).String(), Message: fmt.Sprintf("prototype name keys must be strings, got integer %s", ne.Key)}
			}
			if seenNames[name] {
				jobs = append(jobs, job{kind: kind, name: name, err: &ConversionError{
					Mod: cc.Mod, Kind: info.Name, Name: name, Path: fieldpath.Root,
					Reason: DuplicateKeyInTable, Key: name,
				}})
				continue
			}
			seenNames[name] = true
			jobs = append(jobs, job{kind: kind, name: name, node: ne.Value})
		}
	}

	if unknown != nil {
		return nil, unknown
	}
	return jobs, nil
}
