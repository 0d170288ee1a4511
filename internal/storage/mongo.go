package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/tenancy"
)

// Config controls the MongoDB connection.
type Config struct {
	URI            string        `conf:"uri"             yaml:"uri"             json:"uri"`
	Database       string        `conf:"database"        yaml:"database"        json:"database"`
	ConnectTimeout time.Duration `conf:"connect_timeout" yaml:"connect_timeout" json:"connect_timeout"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "gavel",
		ConnectTimeout: 10 * time.Second,
	}
}

// Client owns the MongoDB connection for the process.
type Client struct {
	mc *mongo.Client
	db *mongo.Database
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("storage: failed to connect to mongodb: %w", err)
	}

	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("storage: failed to ping mongodb: %w", err)
	}

	log.Info(ctx, "storage: connected to mongodb", log.String("database", cfg.Database))

	return &Client{mc: mc, db: mc.Database(cfg.Database)}, nil
}

// ensureTenantIndexes creates the tenant-owner indexes on a guarded
// collection. Every scoped query filters on one of these fields.
func (c *Client) ensureTenantIndexes(ctx context.Context, name string) error {
	_, err := c.db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: tenancy.FieldFirmID, Value: 1}}},
		{Keys: bson.D{{Key: tenancy.FieldLawyerID, Value: 1}}},
	})

	return err
}

// Ping verifies the connection is still alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.mc.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

// driver returns the raw driver for a collection. Unexported so no raw
// handle escapes past the guard.
func (c *Client) driver(name string) Driver {
	return &collectionDriver{coll: c.db.Collection(name)}
}

// collectionDriver adapts *mongo.Collection to the Driver interface.
type collectionDriver struct {
	coll *mongo.Collection
}

func (d *collectionDriver) Find(ctx context.Context, filter bson.M, out any) error {
	cursor, err := d.coll.Find(ctx, filter)
	if err != nil {
		return err
	}

	return cursor.All(ctx, out)
}

func (d *collectionDriver) FindOne(ctx context.Context, filter bson.M, out any) error {
	err := d.coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	return err
}

func (d *collectionDriver) Count(ctx context.Context, filter bson.M) (int64, error) {
	return d.coll.CountDocuments(ctx, filter)
}

func (d *collectionDriver) InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	res, err := d.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("storage: unexpected inserted id type %T", res.InsertedID)
	}

	return id, nil
}

func (d *collectionDriver) UpdateOne(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	return d.coll.UpdateOne(ctx, filter, update)
}

func (d *collectionDriver) UpdateMany(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	return d.coll.UpdateMany(ctx, filter, update)
}

func (d *collectionDriver) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := d.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (d *collectionDriver) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := d.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (d *collectionDriver) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := d.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}

	return cursor.All(ctx, out)
}

func (d *collectionDriver) BulkWrite(ctx context.Context, models []mongo.WriteModel) (*mongo.BulkWriteResult, error) {
	return d.coll.BulkWrite(ctx, models)
}
