package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/protocatalog/internal/loader"
)

// Run loads every mod, writes a summary of the outcome and returns the
// aggregated report error when anything failed.
func (a *App) Run(ctx context.Context) (*loader.Result, error) {
	a.logger.Debug("App.Run method started.")

	res, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	a.WriteSummary(res)

	a.logger.Debug("App.Run method finished.")
	return res, res.Report.Err()
}

// WriteSummary prints the table size, every override and every problem.
func (a *App) WriteSummary(res *loader.Result) {
	r := res.Report
	fmt.Fprintf(a.outW, "Loaded %d prototypes of %d kinds.\n", res.Table.Len(), len(res.Table.Kinds()))

	if len(r.Overrides) > 0 {
		fmt.Fprintf(a.outW, "Overrides: %d\n", len(r.Overrides))
		for _, o := range r.Overrides {
			fmt.Fprintf(a.outW, "  %s/%s: %s -> %s (%s)\n", o.Kind, o.Name, o.PreviousMod, o.Mod, o.Phase)
		}
	}
	if len(r.FailedMods) > 0 {
		fmt.Fprintf(a.outW, "Failed mods: %d\n", len(r.FailedMods))
		for _, m := range r.FailedMods {
			fmt.Fprintf(a.outW, "  %s\n", m)
		}
	}
	if n := r.Problems(); n > 0 {
		fmt.Fprintf(a.outW, "Problems: %d\n", n)
		for _, group := range [][]error{r.ScriptErrors, r.TreeErrors, r.ConversionErrors, r.InsertErrors} {
			for _, err := range group {
				fmt.Fprintf(a.outW, "  %v\n", err)
			}
		}
		for _, b := range r.BrokenReferences {
			fmt.Fprintf(a.outW, "  %v\n", b)
		}
	}
}
