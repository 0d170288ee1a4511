// Package storagetest provides an in-memory storage.Driver for tests.
//
// MemDriver matches filters by top-level equality (plus the $in and $lt
// operators) and implements just enough
// of the update, aggregation and bulk semantics for service-level tests. It
// records the calls and filters it receives so tests can assert that the
// isolation guard delegates operations unchanged.
package storagetest

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gavelhq/gavel/internal/storage"
)

// MemDriver is an in-memory implementation of storage.Driver.
type MemDriver struct {
	Docs       []bson.M
	LastFilter bson.M
	Calls      []string
}

var _ storage.Driver = (*MemDriver)(nil)

// Seed appends documents, assigning an _id when absent.
func (d *MemDriver) Seed(docs ...bson.M) {
	for _, doc := range docs {
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = primitive.NewObjectID()
		}

		d.Docs = append(d.Docs, doc)
	}
}

func (d *MemDriver) record(call string, filter bson.M) {
	d.Calls = append(d.Calls, call)
	d.LastFilter = filter
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if ops, ok := v.(bson.M); ok && isOperator(ops) {
			if !matchOperators(doc[k], ops) {
				return false
			}

			continue
		}

		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}

	return true
}

func isOperator(m bson.M) bool {
	for k := range m {
		if len(k) > 0 && k[0] == '$' {
			return true
		}
	}

	return false
}

// matchOperators covers the operators the services use: $in and $lt.
func matchOperators(value any, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$in":
			list := reflect.ValueOf(arg)
			if list.Kind() != reflect.Slice {
				return false
			}

			found := false

			for i := 0; i < list.Len(); i++ {
				if reflect.DeepEqual(value, list.Index(i).Interface()) {
					found = true
					break
				}
			}

			if !found {
				return false
			}
		case "$lt":
			if !lessThan(value, arg) {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func lessThan(value, bound any) bool {
	switch b := bound.(type) {
	case time.Time:
		t, ok := value.(time.Time)
		return ok && t.Before(b)
	case int:
		n, ok := asInt64(value)
		return ok && n < int64(b)
	case int64:
		n, ok := asInt64(value)
		return ok && n < b
	default:
		return false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// decodeOne round-trips a document through bson into out.
func decodeOne(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	return bson.Unmarshal(raw, out)
}

// decodeAll round-trips documents through bson into the slice pointed to by out.
func decodeAll(docs []bson.M, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("storagetest: out must be a pointer to a slice, got %T", out)
	}

	slice := reflect.MakeSlice(v.Elem().Type(), 0, len(docs))

	for _, doc := range docs {
		elem := reflect.New(v.Elem().Type().Elem())
		if err := decodeOne(doc, elem.Interface()); err != nil {
			return err
		}

		slice = reflect.Append(slice, elem.Elem())
	}

	v.Elem().Set(slice)

	return nil
}

func (d *MemDriver) Find(ctx context.Context, filter bson.M, out any) error {
	d.record("find", filter)

	var result []bson.M

	for _, doc := range d.Docs {
		if matches(doc, filter) {
			result = append(result, doc)
		}
	}

	return decodeAll(result, out)
}

func (d *MemDriver) FindOne(ctx context.Context, filter bson.M, out any) error {
	d.record("findOne", filter)

	for _, doc := range d.Docs {
		if matches(doc, filter) {
			return decodeOne(doc, out)
		}
	}

	return storage.ErrNotFound
}

func (d *MemDriver) Count(ctx context.Context, filter bson.M) (int64, error) {
	d.record("count", filter)

	var n int64

	for _, doc := range d.Docs {
		if matches(doc, filter) {
			n++
		}
	}

	return n, nil
}

func (d *MemDriver) InsertOne(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	d.record("insertOne", nil)

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()

		inserted := make(bson.M, len(doc)+1)
		for k, v := range doc {
			inserted[k] = v
		}

		inserted["_id"] = id
		doc = inserted
	}

	d.Docs = append(d.Docs, doc)

	return id, nil
}

func (d *MemDriver) applySet(doc, update bson.M) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		return
	}

	for k, v := range set {
		doc[k] = v
	}
}

func (d *MemDriver) UpdateOne(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	d.record("updateOne", filter)

	for _, doc := range d.Docs {
		if matches(doc, filter) {
			d.applySet(doc, update)
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}

	return &mongo.UpdateResult{}, nil
}

func (d *MemDriver) UpdateMany(ctx context.Context, filter, update bson.M) (*mongo.UpdateResult, error) {
	d.record("updateMany", filter)

	var n int64

	for _, doc := range d.Docs {
		if matches(doc, filter) {
			d.applySet(doc, update)
			n++
		}
	}

	return &mongo.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}

func (d *MemDriver) deleteWhere(filter bson.M, limit int) int64 {
	var kept []bson.M

	var deleted int64

	for _, doc := range d.Docs {
		if (limit < 0 || deleted < int64(limit)) && matches(doc, filter) {
			deleted++
			continue
		}

		kept = append(kept, doc)
	}

	d.Docs = kept

	return deleted
}

func (d *MemDriver) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	d.record("deleteOne", filter)
	return d.deleteWhere(filter, 1), nil
}

func (d *MemDriver) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	d.record("deleteMany", filter)
	return d.deleteWhere(filter, -1), nil
}

// Aggregate supports the shapes the services use: an optional leading $match
// followed by an optional $group keyed on a single "$field" reference with
// {$sum: 1} and {$sum: "$field"} accumulators.
func (d *MemDriver) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	d.Calls = append(d.Calls, "aggregate")

	current := d.Docs

	for _, stage := range pipeline {
		if len(stage) == 0 {
			continue
		}

		switch stage[0].Key {
		case "$match":
			filter, err := toM(stage[0].Value)
			if err != nil {
				return err
			}

			var next []bson.M

			for _, doc := range current {
				if matches(doc, filter) {
					next = append(next, doc)
				}
			}

			current = next
		case "$group":
			spec, err := toM(stage[0].Value)
			if err != nil {
				return err
			}

			current = group(current, spec)
		default:
			return fmt.Errorf("storagetest: unsupported pipeline stage %q", stage[0].Key)
		}
	}

	return decodeAll(current, out)
}

func toM(v any) (bson.M, error) {
	switch m := v.(type) {
	case bson.M:
		return m, nil
	case bson.D:
		out := make(bson.M, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}

		return out, nil
	default:
		return nil, fmt.Errorf("storagetest: unsupported stage value %T", v)
	}
}

func group(docs []bson.M, spec bson.M) []bson.M {
	keyExpr, _ := spec["_id"].(string)

	buckets := map[any]bson.M{}

	var order []any

	for _, doc := range docs {
		key := fieldRef(doc, keyExpr)

		bucket, ok := buckets[key]
		if !ok {
			bucket = bson.M{"_id": key}
			buckets[key] = bucket

			order = append(order, key)
		}

		for field, accum := range spec {
			if field == "_id" {
				continue
			}

			acc, err := toM(accum)
			if err != nil {
				continue
			}

			prev, _ := bucket[field].(int64)

			switch arg := acc["$sum"].(type) {
			case int:
				bucket[field] = prev + int64(arg)
			case int64:
				bucket[field] = prev + arg
			case string:
				if v, ok := fieldRef(doc, arg).(int64); ok {
					bucket[field] = prev + v
				}
			}
		}
	}

	result := make([]bson.M, 0, len(order))
	for _, key := range order {
		result = append(result, buckets[key])
	}

	return result
}

// fieldRef resolves a "$field" reference against a document.
func fieldRef(doc bson.M, expr string) any {
	if len(expr) > 1 && expr[0] == '$' {
		return doc[expr[1:]]
	}

	return expr
}

func (d *MemDriver) BulkWrite(ctx context.Context, models []mongo.WriteModel) (*mongo.BulkWriteResult, error) {
	d.Calls = append(d.Calls, "bulkWrite")

	result := &mongo.BulkWriteResult{}

	for _, model := range models {
		switch m := model.(type) {
		case *mongo.InsertOneModel:
			doc, err := toM(m.Document)
			if err != nil {
				return nil, err
			}

			if _, err := d.InsertOne(ctx, doc); err != nil {
				return nil, err
			}

			result.InsertedCount++
		case *mongo.UpdateOneModel:
			filter, err := toM(m.Filter)
			if err != nil {
				return nil, err
			}

			update, err := toM(m.Update)
			if err != nil {
				return nil, err
			}

			res, err := d.UpdateOne(ctx, filter, update)
			if err != nil {
				return nil, err
			}

			result.MatchedCount += res.MatchedCount
			result.ModifiedCount += res.ModifiedCount
		case *mongo.UpdateManyModel:
			filter, err := toM(m.Filter)
			if err != nil {
				return nil, err
			}

			update, err := toM(m.Update)
			if err != nil {
				return nil, err
			}

			res, err := d.UpdateMany(ctx, filter, update)
			if err != nil {
				return nil, err
			}

			result.MatchedCount += res.MatchedCount
			result.ModifiedCount += res.ModifiedCount
		case *mongo.DeleteOneModel:
			filter, err := toM(m.Filter)
			if err != nil {
				return nil, err
			}

			result.DeletedCount += d.deleteWhere(filter, 1)
		case *mongo.DeleteManyModel:
			filter, err := toM(m.Filter)
			if err != nil {
				return nil, err
			}

			result.DeletedCount += d.deleteWhere(filter, -1)
		default:
			return nil, fmt.Errorf("storagetest: unsupported write model %T", model)
		}
	}

	return result, nil
}
