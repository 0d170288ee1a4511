package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewClientService),
	fx.Provide(NewCaseService),
	fx.Provide(NewInvoiceService),
	fx.Provide(NewLeadService),
	fx.Provide(NewUserService),
	fx.Provide(NewDigestService),
)
