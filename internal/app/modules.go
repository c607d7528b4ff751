package app

import (
	"github.com/specialistvlad/foldgraph/internal/registry"
	"github.com/specialistvlad/foldgraph/modules/audio"
	"github.com/specialistvlad/foldgraph/modules/env_vars"
	"github.com/specialistvlad/foldgraph/modules/numeric"
	"github.com/specialistvlad/foldgraph/modules/print"
	"github.com/specialistvlad/foldgraph/modules/textual"
)

// coreModules is the definitive list of all node modules that are compiled
// into the foldgraph binary.
var coreModules = []registry.Module{
	&numeric.Module{},
	&textual.Module{},
	&audio.Module{},
	&env_vars.Module{},
	&print.Module{},
}
