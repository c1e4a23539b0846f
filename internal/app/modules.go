package app

import (
	"github.com/specialistvlad/protocatalog/internal/registry"
	"github.com/specialistvlad/protocatalog/modules"
)

// coreModules is the definitive list of all prototype modules that are
// compiled into the protocat binary.
var coreModules []registry.Module = modules.Core()
