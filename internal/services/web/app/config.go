package app

import (
	module "github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Modules             []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}
