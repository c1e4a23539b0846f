package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a kind name is not registered.
var ErrUnknownKind = errors.New("unknown prototype type")

// ErrAbstractKind is returned when an abstract kind is instantiated.
var ErrAbstractKind = errors.New("abstract prototype type")

// BuildError lists every defect found while building a registry.
type BuildError struct {
	Defects []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("registry validation failed:\n- %s", strings.Join(e.Defects, "\n- "))
}

type defects struct {
	list []string
}

func (d *defects) addf(format string, args ...any) {
	d.list = append(d.list, fmt.Sprintf(format, args...))
}

func (d *defects) err() error {
	if len(d.list) == 0 {
		return nil
	}
	return &BuildError{Defects: d.list}
}
