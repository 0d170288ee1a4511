package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gavelhq/gavel/internal/tenancy"
)

// Collection is the guarded accessor for one entity type. Every data
// operation is classified before it reaches the driver: skip-listed entity
// types and calls under an active bypass delegate immediately, everything
// else must carry a provable tenant scope or the call fails with a
// *tenancy.IsolationError before any storage I/O.
//
// The guard holds no state across calls and never mutates the filter,
// pipeline or batch it inspects, so concurrent use needs no coordination.
type Collection struct {
	entity string
	drv    Driver
	reg    *tenancy.Registry
}

// NewCollection wraps a driver in the isolation guard for the named entity type.
func NewCollection(entity string, drv Driver, reg *tenancy.Registry) *Collection {
	return &Collection{entity: entity, drv: drv, reg: reg}
}

// Entity returns the entity type name the guard enforces for.
func (c *Collection) Entity() string {
	return c.entity
}

// enforced reports whether the guard applies to this call: skip-listed
// entity types and explicit bypass directives delegate unchecked.
func (c *Collection) enforced(ctx context.Context) bool {
	return !c.reg.Skipped(c.entity) && !tenancy.IsBypassActive(ctx)
}

// Find decodes all documents matching the tenant-scoped filter into out.
func (c *Collection) Find(ctx context.Context, filter bson.M, out any) error {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return tenancy.NewIsolationError(c.entity, tenancy.OpRead)
	}

	return c.drv.Find(ctx, filter, out)
}

// FindOne decodes the first document matching the tenant-scoped filter into out.
func (c *Collection) FindOne(ctx context.Context, filter bson.M, out any) error {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return tenancy.NewIsolationError(c.entity, tenancy.OpRead)
	}

	return c.drv.FindOne(ctx, filter, out)
}

// Count counts documents matching the tenant-scoped filter.
func (c *Collection) Count(ctx context.Context, filter bson.M) (int64, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return 0, tenancy.NewIsolationError(c.entity, tenancy.OpRead)
	}

	return c.drv.Count(ctx, filter)
}

// InsertOne inserts a document. The document itself must carry the tenant
// scope; an unowned document would be unreachable by every scoped read.
func (c *Collection) InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(doc) {
		return primitive.NilObjectID, tenancy.NewIsolationError(c.entity, tenancy.OpInsert)
	}

	return c.drv.InsertOne(ctx, doc)
}

// UpdateOne updates the first document matching the tenant-scoped filter.
func (c *Collection) UpdateOne(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return nil, tenancy.NewIsolationError(c.entity, tenancy.OpUpdate)
	}

	return c.drv.UpdateOne(ctx, filter, update)
}

// UpdateMany updates all documents matching the tenant-scoped filter.
func (c *Collection) UpdateMany(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return nil, tenancy.NewIsolationError(c.entity, tenancy.OpUpdate)
	}

	return c.drv.UpdateMany(ctx, filter, update)
}

// DeleteOne deletes the first document matching the tenant-scoped filter.
func (c *Collection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return 0, tenancy.NewIsolationError(c.entity, tenancy.OpDelete)
	}

	return c.drv.DeleteOne(ctx, filter)
}

// DeleteMany deletes all documents matching the tenant-scoped filter.
func (c *Collection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	if c.enforced(ctx) && !tenancy.HasTenantFilter(filter) {
		return 0, tenancy.NewIsolationError(c.entity, tenancy.OpDelete)
	}

	return c.drv.DeleteMany(ctx, filter)
}

// Aggregate runs a pipeline whose first stage must be a tenant-scoped $match
// and decodes the results into out.
func (c *Collection) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	if c.enforced(ctx) && !tenancy.HasAggregationScope(pipeline) {
		return tenancy.NewIsolationError(c.entity, tenancy.OpAggregate)
	}

	return c.drv.Aggregate(ctx, pipeline, out)
}

// BulkWrite executes a bulk batch. Every sub-operation must be tenant-scoped
// on its own; a single unscoped entry rejects the whole batch before any
// sub-operation executes.
func (c *Collection) BulkWrite(ctx context.Context, models []mongo.WriteModel) (*mongo.BulkWriteResult, error) {
	if c.enforced(ctx) {
		if report := tenancy.ValidateBulkBatch(models); !report.Valid {
			return nil, tenancy.NewBatchIsolationError(c.entity, report)
		}
	}

	return c.drv.BulkWrite(ctx, models)
}

// FindByIDWithinScope fetches a document by identifier, constrained to the
// caller-supplied scope. The scope is a mandatory first-class argument
// because an identifier-only lookup carries no tenant filter of its own.
// An invalid scope fails with *tenancy.ScopeError before any storage call;
// a document that exists under another tenant surfaces as ErrNotFound,
// exactly like one that does not exist.
func (c *Collection) FindByIDWithinScope(ctx context.Context, id any, scope tenancy.Scope, out any) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	filter := scope.Filter()
	filter["_id"] = id

	return c.drv.FindOne(ctx, filter, out)
}
