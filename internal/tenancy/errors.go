package tenancy

import (
	"fmt"
	"strings"
)

// Op identifies the kind of data operation a violation was raised for.
type Op string

const (
	OpRead      Op = "read"
	OpInsert    Op = "insert"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpAggregate Op = "aggregation"
	OpBulkWrite Op = "bulk_write"
)

// IsolationError reports an operation that was refused because its criteria
// did not provably scope it to a single tenant. It is raised before any
// storage I/O and signals a programming defect, never a transient fault.
type IsolationError struct {
	// Entity is the guarded entity type the operation targeted.
	Entity string
	// Op is the operation kind.
	Op Op
	// Indices are the offending sub-operation positions for bulk batches.
	Indices []int
	// Issues are per-sub-operation details for bulk batches.
	Issues []string
}

func (e *IsolationError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "tenancy: %s on %q is not scoped to a tenant", e.Op, e.Entity)

	if len(e.Issues) > 0 {
		fmt.Fprintf(&sb, ": %s", strings.Join(e.Issues, "; "))
	} else {
		fmt.Fprintf(&sb, ": criteria must constrain %s or %s at the top level", FieldFirmID, FieldLawyerID)
	}

	sb.WriteString(" (use a WithoutScope variant or tenancy.WithBypass for verified system operations)")

	return sb.String()
}

// NewIsolationError builds a violation for a point or aggregation operation.
func NewIsolationError(entity string, op Op) *IsolationError {
	return &IsolationError{Entity: entity, Op: op}
}

// NewBatchIsolationError builds a violation carrying the offending bulk
// sub-operation indices and issue details.
func NewBatchIsolationError(entity string, report BatchReport) *IsolationError {
	return &IsolationError{
		Entity:  entity,
		Op:      OpBulkWrite,
		Indices: report.Indices,
		Issues:  report.Issues,
	}
}

// ScopeError reports a caller-supplied Scope that fails the tenant scope
// invariant. Raised before any storage call is attempted.
type ScopeError struct {
	msg string
}

func (e *ScopeError) Error() string {
	return e.msg
}
