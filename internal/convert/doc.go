// Package convert is the Conversion Engine: it turns a value tree node plus a
// target kind into a typed prototype instance.
//
// The engine walks the flattened field descriptor list the registry derived
// for the kind and, for each field, applies the same rules:
//
//   - a required field that is absent fails with MissingRequiredField
//   - an optional field that is absent receives its declared default
//   - a present field of the wrong shape fails with UnexpectedFieldType
//   - a string outside a oneof set fails with UnknownEnumVariant
//   - a table with a repeated key fails with DuplicateKeyInTable
//
// Nested structures, sequences and maps recurse with an accumulated field
// path, e.g. `graphics_set.animation.layers[2].filename`. Sequences fail fast
// and are only assigned once every element converted. Conversion of one
// prototype is all-or-nothing.
//
// Types may take over their own decoding by implementing value.Decoder and
// may run cross-field checks after decoding by implementing PostConverter.
// Weak references are stored as plain names and never checked here.
package convert
