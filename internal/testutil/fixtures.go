package testutil

// BaseData is a small data script defining an item group, a subgroup, the
// crafting category, two items and the iron-gear-wheel recipe.
const BaseData = `
prototype "item-group" "other" {
  icon      = "__base__/graphics/item-group/other.png"
  icon_size = 64
}

prototype "item-subgroup" "other" {
  group = "other"
}

prototype "recipe-category" "crafting" {}

prototype "item" "iron-plate" {
  icon       = "__base__/graphics/icons/iron-plate.png"
  icon_size  = 64
  stack_size = 100
}

prototype "item" "iron-gear-wheel" {
  icon       = "__base__/graphics/icons/iron-gear-wheel.png"
  icon_size  = 64
  stack_size = 100
}

prototype "recipe" "iron-gear-wheel" {
  energy_required = 0.5
  ingredients     = [["iron-plate", 2]]
  result          = "iron-gear-wheel"
}
`

// BaseMod is the base mod running BaseData in the data phase.
func BaseMod() Mod {
	return Mod{Name: "base", Scripts: map[string]string{"data": BaseData}}
}
