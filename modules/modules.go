// Package modules lists the prototype schema modules compiled into protocat.
package modules

import (
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/modules/base"
	"github.com/specialistvlad/protocatalog/modules/entities"
	"github.com/specialistvlad/protocatalog/modules/fluids"
	"github.com/specialistvlad/protocatalog/modules/items"
	"github.com/specialistvlad/protocatalog/modules/recipes"
	"github.com/specialistvlad/protocatalog/modules/settings"
	"github.com/specialistvlad/protocatalog/modules/tiles"
)

// Core returns the definitive list of schema modules. base registers the
// root kind and must come first.
func Core() []registry.Module {
	return []registry.Module{
		&base.Module{},
		&items.Module{},
		&recipes.Module{},
		&fluids.Module{},
		&entities.Module{},
		&tiles.Module{},
		&settings.Module{},
	}
}

// Registry builds a registry of every core module.
func Registry() (*registry.Registry, error) {
	return registry.NewBuilder().Use(Core()...).Build()
}
