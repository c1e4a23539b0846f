// Package modlist discovers mods on disk, reads their info.json and
// computes the order in which they load.
//
// A mod is a directory holding an info.json file and one script per load
// phase. The optional mod-list.json in the mods directory enables or
// disables mods by name. Dependencies are declared as strings such as
// "base >= 1.1", "? optional-mod", "(?) hidden-optional", "! incompatible"
// or "~ no-load-order-effect".
//
// The load order places every mod after the mods it depends on. Mods that
// are ready at the same time load in case-insensitive natural name order,
// so "mod2" loads before "mod10".
package modlist
