package export

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// RawHCL writes raw definitions, kind -> name -> fields, as prototype
// blocks that a data script can define again. The type and name fields
// become the block labels.
func RawHCL(w io.Writer, raw *value.Table) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	first := true
	for _, ke := range raw.Entries() {
		names, ok := ke.Value.AsTable()
		if !ok {
			return fmt.Errorf("kind %q: %w", ke.Key, value.Mismatch("table", ke.Value))
		}
		for _, ne := range names.Entries() {
			if !first {
				body.AppendNewline()
			}
			first = false
			if err := appendPrototype(body, ke.Key.String(), ne.Key.String(), ne.Value); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func appendPrototype(body *hclwrite.Body, kind, name string, def value.Value) error {
	fields, ok := def.AsTable()
	if !ok {
		return fmt.Errorf("%s %q: %w", kind, name, value.Mismatch("table", def))
	}
	block := body.AppendNewBlock("prototype", []string{kind, name}).Body()
	for _, e := range fields.Entries() {
		key := e.Key.String()
		if key == "type" || key == "name" || e.Value.IsNil() {
			continue
		}
		if !hclsyntax.ValidIdentifier(key) {
			return fmt.Errorf("%s %q: field %q cannot be written as an attribute", kind, name, key)
		}
		block.SetAttributeValue(key, value.ToCty(e.Value))
	}
	return nil
}
