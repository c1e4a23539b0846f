// Package validate implements the post-load reference check.
//
// Prototypes name each other by (kind, name) and the conversion engine
// accepts those names without checking them, because the target may be
// defined by a mod that loads later. Once the data table is frozen the
// Validator walks every field that can carry a reference, looks each target
// up and reports every miss. A reference to an abstract kind such as "item"
// is satisfied by any concrete descendant holding that name.
package validate
