package hclscript

import (
	"fmt"
	"math/big"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/specialistvlad/protocatalog/internal/script"
	"github.com/specialistvlad/protocatalog/internal/value"
)

// run is the state of one script execution.
type run struct {
	env   *script.Environment
	funcs map[string]function.Function
	// base holds the variables that do not change while the script runs.
	base   map[string]cty.Value
	locals map[string]cty.Value

	// out collects every definition as kind -> name -> fields.
	out         *value.Table
	definitions int

	raw      cty.Value
	rawDirty bool
}

func newRun(env *script.Environment, funcs map[string]function.Function) *run {
	if env == nil {
		env = &script.Environment{}
	}
	mods := make(map[string]cty.Value, len(env.Mods))
	for name, version := range env.Mods {
		mods[name] = cty.StringVal(version)
	}
	settings := value.NewTable()
	for _, name := range sortedKeys(env.Settings) {
		settings.SetField(name, env.Settings[name])
	}
	return &run{
		env:   env,
		funcs: funcs,
		base: map[string]cty.Value{
			"mod": cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(env.Mod),
				"version": cty.StringVal(env.Version),
			}),
			"mods":     cty.ObjectVal(mods),
			"settings": value.ToCty(value.TableOf(settings)),
			"phase":    cty.StringVal(string(env.Phase)),
		},
		locals:   make(map[string]cty.Value),
		out:      value.NewTable(),
		rawDirty: true,
	}
}

func (r *run) block(b *hclsyntax.Block) hcl.Diagnostics {
	switch b.Type {
	case "locals":
		if len(b.Labels) != 0 {
			return errorf(b.LabelRanges[0], "Unexpected label", "A locals block takes no labels.")
		}
		return r.defineLocals(b.Body)

	case "prototype", "extend":
		if len(b.Labels) != 2 {
			return errorf(b.TypeRange, "Missing labels", "A %s block needs a kind label and a name label.", b.Type)
		}
		kind, name := b.Labels[0], b.Labels[1]
		fields, diags := r.body(b.Body, b.Type == "extend")
		if diags.HasErrors() {
			return diags
		}
		if b.Type == "prototype" {
			r.define(kind, name, withIdentity(fields, kind, name))
			return nil
		}
		base, ok := r.lookup(kind, name)
		if !ok {
			return errorf(b.LabelRanges[1], "Undefined prototype", "Cannot extend %s %q because no mod defined it.", kind, name)
		}
		merged := base.Clone()
		for _, e := range fields.Entries() {
			if e.Value.IsNil() {
				merged.Delete(e.Key)
				continue
			}
			merged.Put(e.Key, e.Value)
		}
		r.define(kind, name, merged)
		return nil

	default:
		return errorf(b.TypeRange, "Unsupported block type", "Blocks of type %q are not expected here.", b.Type)
	}
}

func (r *run) defineLocals(body *hclsyntax.Body) hcl.Diagnostics {
	if len(body.Blocks) > 0 {
		return errorf(body.Blocks[0].TypeRange, "Unexpected block", "A locals block holds attributes only.")
	}
	for _, attr := range sortedAttributes(body.Attributes) {
		if _, exists := r.locals[attr.Name]; exists {
			return errorf(attr.NameRange, "Duplicate local value", "A local value named %q was already defined.", attr.Name)
		}
		v, diags := attr.Expr.Value(r.evalContext(attr.Expr))
		if diags.HasErrors() {
			return diags
		}
		r.locals[attr.Name] = v
	}
	return nil
}

// body evaluates a block body into a field table in source order. Null
// attributes are kept only when keepNil is set so that extend can remove
// fields.
func (r *run) body(body *hclsyntax.Body, keepNil bool) (*value.Table, hcl.Diagnostics) {
	type item struct {
		pos    int
		attr   *hclsyntax.Attribute
		blocks []*hclsyntax.Block
	}
	var items []*item
	groups := make(map[string]*item)

	for _, attr := range body.Attributes {
		items = append(items, &item{pos: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, b := range body.Blocks {
		if _, clash := body.Attributes[b.Type]; clash {
			return nil, errorf(b.TypeRange, "Conflicting field", "Field %q is set both as an attribute and as a block.", b.Type)
		}
		if len(b.Labels) > 0 {
			return nil, errorf(b.LabelRanges[0], "Unexpected label", "Nested block %q takes no labels.", b.Type)
		}
		if g, ok := groups[b.Type]; ok {
			g.blocks = append(g.blocks, b)
			continue
		}
		g := &item{pos: b.TypeRange.Start.Byte, blocks: []*hclsyntax.Block{b}}
		groups[b.Type] = g
		items = append(items, g)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	t := value.NewTable()
	for _, it := range items {
		if it.attr != nil {
			v, diags := r.expr(it.attr.Expr)
			if diags.HasErrors() {
				return nil, diags
			}
			if v.IsNil() && !keepNil {
				continue
			}
			t.SetField(it.attr.Name, v)
			continue
		}

		subs := make([]value.Value, 0, len(it.blocks))
		for _, b := range it.blocks {
			sub, diags := r.body(b.Body, false)
			if diags.HasErrors() {
				return nil, diags
			}
			subs = append(subs, value.TableOf(sub))
		}
		if len(subs) == 1 {
			t.SetField(it.blocks[0].Type, subs[0])
		} else {
			t.SetField(it.blocks[0].Type, value.TableOf(value.Sequence(subs...)))
		}
	}
	return t, nil
}

// expr evaluates an expression, keeping the order and duplicate keys of
// object and tuple constructors. Null object members are dropped.
func (r *run) expr(e hclsyntax.Expression) (value.Value, hcl.Diagnostics) {
	switch e := e.(type) {
	case *hclsyntax.ObjectConsExpr:
		t := value.NewTable()
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(r.evalContext(item.KeyExpr))
			if diags.HasErrors() {
				return value.Nil(), diags
			}
			key, diags := tableKey(kv, item.KeyExpr.Range())
			if diags.HasErrors() {
				return value.Nil(), diags
			}
			v, diags := r.expr(item.ValueExpr)
			if diags.HasErrors() {
				return value.Nil(), diags
			}
			if v.IsNil() {
				continue
			}
			t.Set(key, v)
		}
		return value.TableOf(t), nil

	case *hclsyntax.TupleConsExpr:
		t := value.NewTable()
		for _, elem := range e.Exprs {
			v, diags := r.expr(elem)
			if diags.HasErrors() {
				return value.Nil(), diags
			}
			t.Append(v)
		}
		return value.TableOf(t), nil

	default:
		cv, diags := e.Value(r.evalContext(e))
		if diags.HasErrors() {
			return value.Nil(), diags
		}
		v, err := value.FromCty(cv)
		if err != nil {
			return value.Nil(), errorf(e.Range(), "Unsupported value", "%s.", err)
		}
		return v, nil
	}
}

// evalContext builds the scope for e. data.raw is materialized only for
// expressions that read it.
func (r *run) evalContext(e hcl.Expression) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(r.base)+2)
	for k, v := range r.base {
		vars[k] = v
	}
	vars["local"] = cty.ObjectVal(r.locals)

	for _, tr := range e.Variables() {
		if tr.RootName() == "data" {
			vars["data"] = cty.ObjectVal(map[string]cty.Value{"raw": r.rawValue()})
			break
		}
	}
	return &hcl.EvalContext{Variables: vars, Functions: r.funcs}
}

func (r *run) rawValue() cty.Value {
	if !r.rawDirty {
		return r.raw
	}
	merged := value.NewTable()
	for _, src := range []*value.Table{r.env.Raw, r.out} {
		for _, e := range src.Entries() {
			names, ok := e.Value.AsTable()
			if !ok {
				continue
			}
			dst := kindTable(merged, e.Key)
			for _, ne := range names.Entries() {
				dst.Put(ne.Key, ne.Value)
			}
		}
	}
	r.raw = value.ToCty(value.TableOf(merged))
	r.rawDirty = false
	return r.raw
}

// lookup finds a prototype defined earlier in this script or by an earlier one.
func (r *run) lookup(kind, name string) (*value.Table, bool) {
	for _, src := range []*value.Table{r.out, r.env.Raw} {
		kv, _ := src.Field(kind)
		names, ok := kv.AsTable()
		if !ok {
			continue
		}
		fv, _ := names.Field(name)
		if fields, ok := fv.AsTable(); ok {
			return fields, true
		}
	}
	return nil, false
}

func (r *run) define(kind, name string, fields *value.Table) {
	kindTable(r.out, value.StringKey(kind)).Put(value.StringKey(name), value.TableOf(fields))
	r.definitions++
	r.rawDirty = true
}

func kindTable(root *value.Table, kind value.Key) *value.Table {
	if v, ok := root.Get(kind); ok {
		if t, ok := v.AsTable(); ok {
			return t
		}
	}
	t := value.NewTable()
	root.Put(kind, value.TableOf(t))
	return t
}

// withIdentity prefixes a definition with its type and name fields unless
// the author wrote them.
func withIdentity(fields *value.Table, kind, name string) *value.Table {
	out := value.NewTable()
	if _, ok := fields.Field("type"); !ok {
		out.SetField("type", value.String(kind))
	}
	if _, ok := fields.Field("name"); !ok {
		out.SetField("name", value.String(name))
	}
	for _, e := range fields.Entries() {
		out.Set(e.Key, e.Value)
	}
	return out
}

func tableKey(v cty.Value, rng hcl.Range) (value.Key, hcl.Diagnostics) {
	v, _ = v.UnmarkDeep()
	switch {
	case v.IsNull() || !v.IsKnown():
		return value.Key{}, errorf(rng, "Invalid key", "Table keys must be known, non-null values.")
	case v.Type() == cty.String:
		return value.StringKey(v.AsString()), nil
	case v.Type() == cty.Number:
		if i, acc := v.AsBigFloat().Int64(); acc == big.Exact {
			return value.IntKey(i), nil
		}
		return value.Key{}, errorf(rng, "Invalid key", "Numeric table keys must be whole numbers.")
	default:
		return value.Key{}, errorf(rng, "Invalid key", "Table keys must be strings or whole numbers, got %s.", v.Type().FriendlyName())
	}
}

func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte })
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func errorf(rng hcl.Range, summary, format string, args ...any) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &rng,
	}}
}
