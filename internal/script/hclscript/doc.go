// Package hclscript runs data-stage scripts written in HCL.
//
// A script is a sequence of top-level blocks, executed in source order:
//
//	locals {
//	  gear_time = 0.5
//	}
//
//	prototype "recipe" "iron-gear-wheel" {
//	  energy_required = local.gear_time
//	  ingredients     = [["iron-plate", 2]]
//	  result          = "iron-gear-wheel"
//	}
//
//	extend "recipe" "iron-gear-wheel" {
//	  energy_required = data.raw.recipe["iron-gear-wheel"].energy_required * 2
//	}
//
// A prototype block defines or replaces a prototype. An extend block copies
// an existing prototype and assigns the given fields on top; assigning null
// removes a field. Nested blocks become table fields, and a block type that
// repeats becomes a sequence of tables. Object and tuple constructors keep
// their source order and duplicate keys, so the conversion engine sees
// exactly what the author wrote.
//
// Expressions can read data.raw, mod.name, mod.version, mods, settings,
// phase and local, and call a curated set of go-cty standard functions.
package hclscript
