package conf

import (
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/server"
	"github.com/gavelhq/gavel/internal/server/digest"
	"github.com/gavelhq/gavel/internal/storage"
)

// Module loads the configuration and exposes the per-package sections.
var Module = fx.Module("conf",
	fx.Provide(Load),
	fx.Provide(func(c Config) server.Config { return c.APIServer }),
	fx.Provide(func(c Config) storage.Config { return c.Mongo }),
	fx.Provide(func(c Config) log.Config { return c.Log }),
	fx.Provide(func(c Config) digest.Config { return c.Digest }),
)
