package opts

import (
	"github.com/taskvault/taskvault/pkg/config"
	"github.com/taskvault/taskvault/pkg/render"
	"github.com/taskvault/taskvault/pkg/store"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Store      *store.Store
	Renderer   *render.Renderer
	UserLogger *UserLogger

	// Actor is the identity recorded in audit entries, from the --actor
	// flag or the config file.
	Actor string
}
