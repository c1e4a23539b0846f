package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/protocatalog/internal/export"
	"github.com/specialistvlad/protocatalog/internal/value"
)

func newRawCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "raw [KIND [NAME]]",
		Short: "Print the final raw definitions as data script blocks",
		Long: `Raw loads every mod and prints the shared raw table as it stood after the
last phase, before conversion. KIND and NAME narrow the output.`,
		Example: `protocat raw recipe iron-gear-wheel`,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp()
			if err != nil {
				return err
			}
			res, err := a.Load(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := selectRaw(res.Raw, args)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return export.RawHCL(o.outW, raw)
		},
	}
}

// selectRaw narrows the raw table to one kind and optionally one name.
func selectRaw(raw *value.Table, args []string) (*value.Table, error) {
	if len(args) == 0 {
		return raw, nil
	}
	kv, _ := raw.Field(args[0])
	names, ok := kv.AsTable()
	if !ok {
		return nil, fmt.Errorf("no raw definitions of kind %q", args[0])
	}
	if len(args) == 1 {
		return value.NewTable().SetField(args[0], kv), nil
	}
	def, ok := names.Field(args[1])
	if !ok {
		return nil, fmt.Errorf("no raw definition %s/%s", args[0], args[1])
	}
	one := value.NewTable().SetField(args[1], def)
	return value.NewTable().SetField(args[0], value.TableOf(one)), nil
}
