package biz

import (
	"context"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/storage/storagetest"
	"github.com/gavelhq/gavel/internal/tenancy"
)

func guarded(entity string, drv *storagetest.MemDriver) *storage.Collection {
	return storage.NewCollection(entity, drv, tenancy.NewRegistry(objects.SkipListed()...))
}

func firmCtx(firmID string) context.Context {
	return tenancy.WithScope(context.Background(), tenancy.FirmScope(firmID))
}

func lawyerCtx(lawyerID string) context.Context {
	return tenancy.WithScope(context.Background(), tenancy.LawyerScope(lawyerID))
}
