package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/specialistvlad/protocatalog/internal/datatable"
	"github.com/specialistvlad/protocatalog/internal/export"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/registry"
)

// Output formats of the get command.
var getFormats = []string{"yaml", "json", "dump"}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newGetCommand(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get KIND NAME",
		Short: "Print one converted prototype",
		Long: `Get loads every mod and prints the prototype KIND/NAME. KIND may be an
abstract kind such as entity, in which case every concrete kind below it is
searched.`,
		Example: `protocat get recipe iron-gear-wheel --format json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(getFormats, format) {
				return usageError(fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(getFormats, ", ")))
			}
			a, err := o.newApp()
			if err != nil {
				return err
			}
			reg := a.Registry()
			info, err := reg.Lookup(args[0])
			if err != nil {
				return usageError(err)
			}

			res, err := a.Load(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := find(reg, res.Table, info.Name, args[1])
			if !ok {
				return &ExitError{Code: 1, Message: fmt.Sprintf("prototype %s/%s not found", info.Name, args[1])}
			}

			switch format {
			case "json":
				return export.JSON(o.outW, reg, p)
			case "dump":
				dumpConfig.Fdump(o.outW, p)
				return nil
			default:
				return export.YAML(o.outW, reg, p)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", fmt.Sprintf("Output format. Options: %s.", strings.Join(getFormats, ", ")))
	return cmd
}

// find looks name up under kind and, for abstract kinds, under every
// concrete descendant.
func find(reg *registry.Registry, tbl *datatable.Table, kind prototype.Kind, name string) (prototype.Prototype, bool) {
	for _, k := range reg.ConcreteDescendants(kind) {
		if p, ok := tbl.Get(k, name); ok {
			return p, true
		}
	}
	return nil, false
}
