package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestHasTenantFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter bson.M
		want   bool
	}{
		{
			name:   "firm scoped",
			filter: bson.M{"status": "paid", "firmId": "F1"},
			want:   true,
		},
		{
			name:   "lawyer scoped",
			filter: bson.M{"lawyerId": "L1"},
			want:   true,
		},
		{
			name:   "unscoped",
			filter: bson.M{"status": "paid"},
			want:   false,
		},
		{
			name:   "empty filter",
			filter: bson.M{},
			want:   false,
		},
		{
			name:   "nil scope value carries no constraint",
			filter: bson.M{"firmId": nil},
			want:   false,
		},
		{
			name:   "empty string scope value carries no constraint",
			filter: bson.M{"lawyerId": ""},
			want:   false,
		},
		{
			name: "scope nested in $or does not count",
			// A non-scoping $or branch could still match cross-tenant rows,
			// so nested scope is rejected. Inspection is top-level only.
			filter: bson.M{"$or": []bson.M{{"firmId": "F1"}, {"status": "draft"}}},
			want:   false,
		},
		{
			name:   "scope via operator value still counts at top level",
			filter: bson.M{"firmId": bson.M{"$eq": "F1"}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasTenantFilter(tt.filter))
		})
	}
}

func TestHasAggregationScope(t *testing.T) {
	tests := []struct {
		name     string
		pipeline mongo.Pipeline
		want     bool
	}{
		{
			name:     "empty pipeline",
			pipeline: mongo.Pipeline{},
			want:     false,
		},
		{
			name: "first stage scoped match",
			pipeline: mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"firmId": "F1"}}},
				{{Key: "$group", Value: bson.M{"_id": "$status"}}},
			},
			want: true,
		},
		{
			name: "first stage match without scope",
			pipeline: mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"status": "paid"}}},
			},
			want: false,
		},
		{
			name: "first stage is not a match",
			// The $group has already seen the full unscoped dataset; a later
			// $match cannot repair that.
			pipeline: mongo.Pipeline{
				{{Key: "$group", Value: bson.M{"_id": "$status"}}},
				{{Key: "$match", Value: bson.M{"firmId": "F1"}}},
			},
			want: false,
		},
		{
			name: "match criteria as bson.D",
			pipeline: mongo.Pipeline{
				{{Key: "$match", Value: bson.D{{Key: "lawyerId", Value: "L1"}}}},
			},
			want: true,
		},
		{
			name: "match criteria not inspectable",
			pipeline: mongo.Pipeline{
				{{Key: "$match", Value: 42}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAggregationScope(tt.pipeline))
		})
	}
}

func TestValidateBulkBatch(t *testing.T) {
	t.Run("all sub-operations scoped", func(t *testing.T) {
		report := ValidateBulkBatch([]mongo.WriteModel{
			mongo.NewInsertOneModel().SetDocument(bson.M{"name": "x", "firmId": "F1"}),
			mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": "123", "firmId": "F1"}).
				SetUpdate(bson.M{"$set": bson.M{"status": "sent"}}),
			mongo.NewDeleteManyModel().SetFilter(bson.M{"lawyerId": "L1", "status": "void"}),
		})

		assert.True(t, report.Valid)
		assert.Empty(t, report.Issues)
		assert.Empty(t, report.Indices)
	})

	t.Run("one unscoped sub-operation fails the whole batch", func(t *testing.T) {
		report := ValidateBulkBatch([]mongo.WriteModel{
			mongo.NewInsertOneModel().SetDocument(bson.M{"name": "x", "firmId": "F1"}),
			mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": "123"}).
				SetUpdate(bson.M{"$set": bson.M{"status": "sent"}}),
		})

		assert.False(t, report.Valid)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, "sub-operation 1 (updateOne) missing tenant scope", report.Issues[0])
		assert.Equal(t, []int{1}, report.Indices)
	})

	t.Run("multiple offenders are all reported", func(t *testing.T) {
		report := ValidateBulkBatch([]mongo.WriteModel{
			mongo.NewInsertOneModel().SetDocument(bson.M{"name": "x"}),
			mongo.NewUpdateManyModel().
				SetFilter(bson.M{"firmId": "F1"}).
				SetUpdate(bson.M{"$set": bson.M{"status": "sent"}}),
			mongo.NewDeleteOneModel().SetFilter(bson.M{"status": "void"}),
		})

		assert.False(t, report.Valid)
		assert.Equal(t, []int{0, 2}, report.Indices)
		require.Len(t, report.Issues, 2)
		assert.Contains(t, report.Issues[0], "sub-operation 0 (insertOne)")
		assert.Contains(t, report.Issues[1], "sub-operation 2 (deleteOne)")
	})

	t.Run("replace judged by filter", func(t *testing.T) {
		report := ValidateBulkBatch([]mongo.WriteModel{
			mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": "123", "firmId": "F1"}).
				SetReplacement(bson.M{"name": "y", "firmId": "F1"}),
		})

		assert.True(t, report.Valid)
	})

	t.Run("struct document cannot be verified", func(t *testing.T) {
		type invoice struct {
			FirmID string `bson:"firmId"`
		}

		report := ValidateBulkBatch([]mongo.WriteModel{
			mongo.NewInsertOneModel().SetDocument(invoice{FirmID: "F1"}),
		})

		assert.False(t, report.Valid)
		assert.Equal(t, []int{0}, report.Indices)
	})

	t.Run("empty batch is valid", func(t *testing.T) {
		report := ValidateBulkBatch(nil)
		assert.True(t, report.Valid)
	})
}

func TestPredicatesDoNotMutateInput(t *testing.T) {
	filter := bson.M{"status": "paid", "firmId": "F1"}
	HasTenantFilter(filter)
	assert.Equal(t, bson.M{"status": "paid", "firmId": "F1"}, filter)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"firmId": "F1"}}},
	}
	HasAggregationScope(pipeline)
	assert.Equal(t, "$match", pipeline[0][0].Key)
}
