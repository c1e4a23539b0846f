package datatable

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/protocatalog/internal/phase"
	"github.com/specialistvlad/protocatalog/internal/prototype"
)

var (
	// ErrTableFrozen is returned by Insert once the table is frozen.
	ErrTableFrozen = errors.New("data table is frozen")
	// ErrOverrideNotAllowed matches every *OverrideNotAllowedError.
	ErrOverrideNotAllowed = errors.New("override not allowed")
	// ErrIdentityMismatch is returned when an instance is inserted under a
	// key other than its own kind and name.
	ErrIdentityMismatch = errors.New("prototype identity does not match its key")
)

// OverrideNotAllowedError reports an insert that would replace a prototype
// of a kind the policy protects.
type OverrideNotAllowedError struct {
	Kind        prototype.Kind
	Name        string
	Phase       phase.Phase
	PreviousMod string
	Mod         string
}

func (e *OverrideNotAllowedError) Error() string {
	return fmt.Sprintf("mod %q may not override %s %q defined by mod %q during phase %s",
		e.Mod, e.Kind, e.Name, e.PreviousMod, e.Phase)
}

func (e *OverrideNotAllowedError) Is(target error) bool { return target == ErrOverrideNotAllowed }
