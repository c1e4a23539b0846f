package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrderCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the enabled mods in load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp()
			if err != nil {
				return err
			}
			mods, err := a.Mods(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			for i, m := range mods {
				fmt.Fprintf(o.outW, "%d. %s %s\n", i+1, m.Name, m.Version)
			}
			return nil
		},
	}
}
