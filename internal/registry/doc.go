// Package registry is the Type Registry: the catalog of every prototype kind
// the system can convert.
//
// Kinds form a single-inheritance tree rooted at prototype-base. Each kind
// contributes a layer, a Go struct whose `proto` tagged fields become field
// descriptors. A concrete kind names a constructor for a Go struct that embeds
// the layer of every kind in its ancestry; the registry flattens the chain
// into one ordered descriptor list (root first) bound to that struct.
//
// Everything is derived once, at startup, by reflection. Builder.Build checks
// that the Go types and the declared hierarchy are in sync and reports every
// defect it finds: unknown parents, cycles, duplicate kinds, fields declared
// twice along one ancestry, malformed tags, unparsable defaults and references
// to kinds that do not exist. The built Registry is immutable and safe for
// concurrent use.
//
// Tag grammar:
//
//	proto:"<name>[,required][,default=<literal>][,oneof=a|b|c][,ref=<kind>][,single]"
//
// `single` lets a sequence field accept one bare element, `ref` marks a weak
// reference checked after loading and `oneof` restricts string values.
package registry
