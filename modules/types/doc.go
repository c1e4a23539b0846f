// Package types holds the value types shared by prototype schemas: colors,
// vectors, energy amounts, icons, sprites, fluid boxes, ingredients and
// products, and the other structured properties several kinds reuse.
//
// Types with more than one accepted script form implement value.Decoder.
// Plain structs are decoded field by field through their `proto` tags.
package types
