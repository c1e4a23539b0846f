// Package locale holds translated texts and renders localised strings.
//
// A Catalog maps `section.key` to a text, e.g. `item-name.iron-plate`.
// Texts may reference parameters with `__1__`, `__2__` and so on.
// A LocalisedString is either a literal or a key followed by parameters,
// which are themselves localised strings. The empty key concatenates the
// parameters and the `?` key picks the first parameter that resolves.
package locale
