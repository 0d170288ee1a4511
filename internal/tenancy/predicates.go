package tenancy

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HasTenantFilter reports whether the filter's own top-level keys constrain
// firmId or lawyerId to a concrete value.
//
// The inspection is deliberately shallow: scope buried inside a nested
// logical operator (an $or branch, say) leaves other branches free to match
// cross-tenant rows, so only top-level presence counts as a guarantee.
// Nested operators are not traversed.
//
// Key presence alone is not enough either: a nil or empty-string value is
// rejected, since {firmId: nil} matches unowned rows rather than scoping to
// a tenant.
func HasTenantFilter(filter bson.M) bool {
	if v, ok := filter[FieldFirmID]; ok && !isEmptyValue(v) {
		return true
	}

	if v, ok := filter[FieldLawyerID]; ok && !isEmptyValue(v) {
		return true
	}

	return false
}

// HasAggregationScope reports whether the pipeline's first stage is a $match
// whose criteria satisfy HasTenantFilter.
//
// The scope must be the first stage specifically: any stage before a $match
// (a $group, $lookup or $project) has already processed the full unscoped
// dataset, so a later filter no longer helps.
func HasAggregationScope(pipeline mongo.Pipeline) bool {
	if len(pipeline) == 0 {
		return false
	}

	first := pipeline[0]
	if len(first) == 0 || first[0].Key != "$match" {
		return false
	}

	criteria, ok := asFilter(first[0].Value)
	if !ok {
		return false
	}

	return HasTenantFilter(criteria)
}

// BatchReport is the result of validating a bulk batch.
type BatchReport struct {
	// Valid is true iff every sub-operation is tenant-scoped.
	Valid bool
	// Issues holds one entry per non-compliant sub-operation.
	Issues []string
	// Indices are the positions of the non-compliant sub-operations.
	Indices []int
}

// ValidateBulkBatch classifies every sub-operation of a bulk batch. Inserts
// are judged by their document, updates, deletes and replacements by their
// filter. A single non-compliant entry fails the whole batch: bulk batches
// execute near-atomically, so one bad entry must not ride along with its
// compliant siblings.
func ValidateBulkBatch(models []mongo.WriteModel) BatchReport {
	report := BatchReport{Valid: true}

	for i, model := range models {
		kind, target := batchTarget(model)

		criteria, ok := asFilter(target)
		if !ok || !HasTenantFilter(criteria) {
			report.Valid = false
			report.Indices = append(report.Indices, i)
			report.Issues = append(report.Issues, fmt.Sprintf("sub-operation %d (%s) missing tenant scope", i, kind))
		}
	}

	return report
}

// batchTarget returns the sub-operation kind and the value that must carry
// the tenant scope.
func batchTarget(model mongo.WriteModel) (string, any) {
	switch m := model.(type) {
	case *mongo.InsertOneModel:
		return "insertOne", m.Document
	case *mongo.UpdateOneModel:
		return "updateOne", m.Filter
	case *mongo.UpdateManyModel:
		return "updateMany", m.Filter
	case *mongo.DeleteOneModel:
		return "deleteOne", m.Filter
	case *mongo.DeleteManyModel:
		return "deleteMany", m.Filter
	case *mongo.ReplaceOneModel:
		return "replaceOne", m.Filter
	default:
		return fmt.Sprintf("%T", model), nil
	}
}

// asFilter normalizes the filter shapes the driver accepts into a bson.M.
// Anything it cannot inspect (a struct document, a nil filter) is reported
// as non-inspectable and therefore non-compliant.
func asFilter(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return m, true
	case bson.D:
		out := make(bson.M, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}

		return out, true
	default:
		return nil, false
	}
}

// isEmptyValue reports whether a filter value carries no real constraint.
// {firmId: nil} or {firmId: ""} would match unowned rows, not scope to a tenant.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}

	if s, ok := v.(string); ok {
		return s == ""
	}

	return false
}
