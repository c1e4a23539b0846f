package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoadCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "load",
		Short:   "Load and validate every enabled mod",
		Long:    `Load runs every mod's data scripts, converts the definitions and validates every reference, then prints a summary of overrides and problems.`,
		Example: `protocat load --mods ./mods --policy policy.hcl`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp()
			if err != nil {
				return err
			}
			res, err := a.Run(cmd.Context())
			if res == nil {
				return err
			}
			if n := res.Report.Problems(); n > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("load finished with %d problems", n)}
			}
			return nil
		},
	}
}
