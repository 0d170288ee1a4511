package api

import (
	"go.uber.org/fx"
)

var Module = fx.Module("api",
	fx.Provide(NewSystemHandlers),
	fx.Provide(NewClientHandlers),
	fx.Provide(NewCaseHandlers),
	fx.Provide(NewInvoiceHandlers),
	fx.Provide(NewLeadHandlers),
)
