// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/media"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/register"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the gateways and shared config required to compose
// the web module registry. Each gateway is typed as the narrow interface
// defined by the consuming module, so modules cannot reach clients they were
// not given.
type Dependencies struct {
	Base modulehandler.Base

	// Register module gateway and redirect target.
	AccountGateway register.AccountGateway
	LoginPath      string

	// Media module gateway and optional upload ledger.
	ImageGateway media.ImageGateway
	UploadLedger media.Ledger
}
