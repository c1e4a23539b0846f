// internal/fieldpath/doc.go

/*
Package fieldpath provides the structured path used to point at a single
field inside a prototype definition, e.g. `graphics_set.animation.layers[2].filename`.

Paths are built incrementally while a definition is walked, so every
operation returns a new Path and never mutates the receiver. Sequence
indices are 1-based, matching the keys a script uses for array-like tables.
*/
package fieldpath
