package loader

import (
	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
	"github.com/specialistvlad/protocatalog/internal/validate"
)

// Override records a prototype replaced by a later definition.
type Override struct {
	Kind        prototype.Kind
	Name        string
	PreviousMod string
	Mod         string
	Phase       phase.Phase
}

// Report collects everything that went wrong, or was replaced, during a load.
type Report struct {
	// ScriptErrors are failures to read or execute a mod script.
	ScriptErrors []error
	// TreeErrors are script results rejected as a whole: malformed shapes
	// and unknown or abstract kinds.
	TreeErrors []error
	// ConversionErrors are individual prototypes that failed to convert.
	ConversionErrors []error
	// InsertErrors are converted prototypes the table refused.
	InsertErrors []error
	// Overrides are informational and never make the load fail.
	Overrides        []Override
	BrokenReferences []validate.BrokenReference
	// FailedMods lists mods skipped after a script failure, in failure order.
	FailedMods []string
}

// Err aggregates every failure in the report, nil when the load was clean.
func (r *Report) Err() error {
	var merr *multierror.Error
	for _, group := range [][]error{r.ScriptErrors, r.TreeErrors, r.ConversionErrors, r.InsertErrors} {
		merr = multierror.Append(merr, group...)
	}
	for _, b := range r.BrokenReferences {
		merr = multierror.Append(merr, b)
	}
	return merr.ErrorOrNil()
}

// Problems counts the failures in the report.
func (r *Report) Problems() int {
	return len(r.ScriptErrors) + len(r.TreeErrors) + len(r.ConversionErrors) + len(r.InsertErrors) + len(r.BrokenReferences)
}
