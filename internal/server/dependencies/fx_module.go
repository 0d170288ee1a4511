package dependencies

import (
	"context"

	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/tenancy"
)

// Module provides the shared process dependencies: the skip registry, the
// MongoDB client and the guarded store built over both.
var Module = fx.Module("dependencies",
	fx.Provide(NewRegistry),
	fx.Provide(NewStorageClient),
	fx.Provide(storage.NewStore),
	fx.Invoke(func(lc fx.Lifecycle, store *storage.Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.EnsureIndexes(ctx)
			},
		})
	}),
)

func NewRegistry() *tenancy.Registry {
	return tenancy.NewRegistry(objects.SkipListed()...)
}

func NewStorageClient(lc fx.Lifecycle, cfg storage.Config) (*storage.Client, error) {
	client, err := storage.Open(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})

	return client, nil
}
