// Package phase names the data-stage load phases.
package phase

import "fmt"

// Phase is one pass over every mod's data-stage scripts.
type Phase string

const (
	Data       Phase = "data"
	Updates    Phase = "data-updates"
	FinalFixes Phase = "data-final-fixes"
)

var all = []Phase{Data, Updates, FinalFixes}

// All returns the phases in execution order.
func All() []Phase {
	out := make([]Phase, len(all))
	copy(out, all)
	return out
}

// Parse validates a phase name.
func Parse(s string) (Phase, error) {
	for _, p := range all {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown load phase %q, expected one of %v", s, all)
}

func (p Phase) String() string { return string(p) }
