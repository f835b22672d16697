package modules

import (
	"github.com/firehorseusa/firehorse/internal/services/web/modules/home"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/media"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/register"
)

// DefaultModules returns the site's page modules. The home module mounts at
// the root and owns the fallback redirect, so it comes last.
func DefaultModules(deps Dependencies) []Module {
	mediaOpts := []media.Option{media.WithBase(deps.Base), media.WithGateway(deps.ImageGateway)}
	if deps.UploadLedger != nil {
		mediaOpts = append(mediaOpts, media.WithLedger(deps.UploadLedger))
	}
	return []Module{
		register.New(
			register.WithBase(deps.Base),
			register.WithGateway(deps.AccountGateway),
			register.WithLoginPath(deps.LoginPath),
		),
		media.New(mediaOpts...),
		home.New(home.WithBase(deps.Base)),
	}
}
