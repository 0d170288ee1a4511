package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by FindOne-shaped operations when no document
// matches. A scoped lookup returns it both for a document that does not
// exist and for one that exists under another tenant; callers cannot tell
// the two apart, which prevents existence leakage across tenants.
var ErrNotFound = errors.New("storage: document not found")

// Driver is the raw collection handle underneath the guard. The production
// implementation adapts a *mongo.Collection; tests substitute an in-memory
// fake. Application code never holds a Driver directly, only a *Collection,
// so every call site passes through the same enforcement path.
type Driver interface {
	Find(ctx context.Context, filter bson.M, out any) error
	FindOne(ctx context.Context, filter bson.M, out any) error
	Count(ctx context.Context, filter bson.M) (int64, error)
	InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error
	BulkWrite(ctx context.Context, models []mongo.WriteModel) (*mongo.BulkWriteResult, error)
}
