package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/tenancy"
)

// The WithoutScope variants are the sanctioned escape hatch for verified
// cross-tenant system operations: password-reset lookups, scheduled digests,
// data migrations. They delegate unconditionally and perform no
// authorization of their own; callers prove legitimacy elsewhere. Every use
// is logged so cross-tenant access stays auditable.

func (c *Collection) auditUnscoped(ctx context.Context, op tenancy.Op) {
	log.Debug(ctx, "storage: unscoped operation",
		log.String("entity", c.entity),
		log.String("operation", string(op)),
	)
}

// FindWithoutScope decodes all documents matching the filter, with no tenant
// scope requirement.
func (c *Collection) FindWithoutScope(ctx context.Context, filter bson.M, out any) error {
	c.auditUnscoped(ctx, tenancy.OpRead)
	return c.drv.Find(ctx, filter, out)
}

// FindOneWithoutScope decodes the first matching document, with no tenant
// scope requirement.
func (c *Collection) FindOneWithoutScope(ctx context.Context, filter bson.M, out any) error {
	c.auditUnscoped(ctx, tenancy.OpRead)
	return c.drv.FindOne(ctx, filter, out)
}

// CountWithoutScope counts matching documents, with no tenant scope requirement.
func (c *Collection) CountWithoutScope(ctx context.Context, filter bson.M) (int64, error) {
	c.auditUnscoped(ctx, tenancy.OpRead)
	return c.drv.Count(ctx, filter)
}

// InsertOneWithoutScope inserts a document that carries no tenant owner.
func (c *Collection) InsertOneWithoutScope(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	c.auditUnscoped(ctx, tenancy.OpInsert)
	return c.drv.InsertOne(ctx, doc)
}

// UpdateOneWithoutScope updates the first matching document, with no tenant
// scope requirement.
func (c *Collection) UpdateOneWithoutScope(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	c.auditUnscoped(ctx, tenancy.OpUpdate)
	return c.drv.UpdateOne(ctx, filter, update)
}

// UpdateManyWithoutScope updates all matching documents, with no tenant
// scope requirement.
func (c *Collection) UpdateManyWithoutScope(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	c.auditUnscoped(ctx, tenancy.OpUpdate)
	return c.drv.UpdateMany(ctx, filter, update)
}

// DeleteOneWithoutScope deletes the first matching document, with no tenant
// scope requirement.
func (c *Collection) DeleteOneWithoutScope(ctx context.Context, filter bson.M) (int64, error) {
	c.auditUnscoped(ctx, tenancy.OpDelete)
	return c.drv.DeleteOne(ctx, filter)
}

// DeleteManyWithoutScope deletes all matching documents, with no tenant
// scope requirement.
func (c *Collection) DeleteManyWithoutScope(ctx context.Context, filter bson.M) (int64, error) {
	c.auditUnscoped(ctx, tenancy.OpDelete)
	return c.drv.DeleteMany(ctx, filter)
}

// AggregateWithoutScope runs a pipeline with no first-stage scope requirement.
func (c *Collection) AggregateWithoutScope(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	c.auditUnscoped(ctx, tenancy.OpAggregate)
	return c.drv.Aggregate(ctx, pipeline, out)
}
