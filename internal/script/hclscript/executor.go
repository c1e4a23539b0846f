package hclscript

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/specialistvlad/protocatalog/internal/ctxlog"
	"github.com/specialistvlad/protocatalog/internal/script"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// Extension is the file extension of HCL data-stage scripts.
const Extension = ".hcl"

// Executor runs HCL scripts one at a time.
type Executor struct {
	mu    sync.Mutex
	funcs map[string]function.Function
}

// New creates an Executor.
func New() *Executor {
	return &Executor{funcs: functions()}
}

// Execute implements script.Executor.
func (x *Executor) Execute(ctx context.Context, s *script.Script, env *script.Environment) (value.Value, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	logger := ctxlog.FromContext(ctx)

	file, diags := hclsyntax.ParseConfig(s.Source, s.Filename, hcl.InitialPos)
	if diags.HasErrors() {
		return value.Nil(), diagError(s, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return value.Nil(), &script.ExecutionError{Mod: s.Mod, Phase: s.Phase, Message: "script is not native HCL syntax"}
	}
	for _, attr := range sortedAttributes(body.Attributes) {
		rng := attr.SrcRange
		return value.Nil(), diagError(s, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unexpected top-level attribute",
			Detail:   fmt.Sprintf("Attribute %q must be placed inside a prototype, extend or locals block.", attr.Name),
			Subject:  &rng,
		}})
	}

	r := newRun(env, x.funcs)
	for _, block := range body.Blocks {
		if err := ctx.Err(); err != nil {
			return value.Nil(), fmt.Errorf("script for mod %q interrupted: %w", s.Mod, err)
		}
		if diags := r.block(block); diags.HasErrors() {
			return value.Nil(), diagError(s, diags)
		}
	}

	logger.Debug("Script executed.", "file", s.Filename, "blocks", len(body.Blocks), "definitions", r.definitions)
	return value.TableOf(r.out), nil
}

// diagError turns the first error diagnostic into an *script.ExecutionError.
func diagError(s *script.Script, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		loc := ""
		if d.Subject != nil {
			loc = d.Subject.String()
		}
		return &script.ExecutionError{Mod: s.Mod, Phase: s.Phase, Message: msg, Location: loc}
	}
	return &script.ExecutionError{Mod: s.Mod, Phase: s.Phase, Message: diags.Error()}
}
