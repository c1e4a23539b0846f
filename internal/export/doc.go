// Package export renders converted prototypes as YAML or JSON documents.
//
// Fields are written in the order the registry compiled them, root
// ancestor first, under their script names. Unset optional fields are
// left out.
package export
