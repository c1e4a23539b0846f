package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newKindsCommand(o *options) *cobra.Command {
	var concreteOnly bool
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List every registered prototype kind with its ancestry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp()
			if err != nil {
				return err
			}
			reg := a.Registry()
			for _, k := range reg.Kinds() {
				info, _ := reg.Kind(k)
				if concreteOnly && info.Abstract {
					continue
				}
				chain := make([]string, len(info.Chain))
				for i, c := range info.Chain {
					chain[i] = string(c)
				}
				suffix := ""
				if info.Abstract {
					suffix = " (abstract)"
				}
				fmt.Fprintf(o.outW, "%s: %s%s\n", info.Name, strings.Join(chain, " > "), suffix)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&concreteOnly, "concrete", false, "List only kinds that can be instantiated.")
	return cmd
}
