package tenancy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Field names that scope a record to a tenant. Every guarded entity stores
// exactly one of them.
const (
	// FieldFirmID identifies a multi-member firm tenant.
	FieldFirmID = "firmId"
	// FieldLawyerID identifies a solo practitioner acting as their own tenant.
	FieldLawyerID = "lawyerId"
)

// Scope identifies the tenant an operation is restricted to. Exactly one of
// FirmID or LawyerID is populated; a zero Scope never authorizes anything.
type Scope struct {
	FirmID   string `conf:"firm_id"   yaml:"firm_id"   json:"firmId,omitempty"`
	LawyerID string `conf:"lawyer_id" yaml:"lawyer_id" json:"lawyerId,omitempty"`
}

// FirmScope returns a Scope for a firm tenant.
func FirmScope(firmID string) Scope {
	return Scope{FirmID: firmID}
}

// LawyerScope returns a Scope for a solo practitioner tenant.
func LawyerScope(lawyerID string) Scope {
	return Scope{LawyerID: lawyerID}
}

// IsZero reports whether neither identifier is populated.
func (s Scope) IsZero() bool {
	return s.FirmID == "" && s.LawyerID == ""
}

// Validate returns a *ScopeError unless exactly one identifier is populated.
func (s Scope) Validate() error {
	if s.IsZero() {
		return &ScopeError{msg: "tenancy: scope must carry a firmId or a lawyerId"}
	}

	if s.FirmID != "" && s.LawyerID != "" {
		return &ScopeError{msg: "tenancy: scope is ambiguous: both firmId and lawyerId are set"}
	}

	return nil
}

// Filter returns the filter criteria constraining an operation to this scope.
// Callers merge the result into their own criteria; Filter never aliases
// internal state, so the returned map is safe to extend.
func (s Scope) Filter() bson.M {
	if s.FirmID != "" {
		return bson.M{FieldFirmID: s.FirmID}
	}

	if s.LawyerID != "" {
		return bson.M{FieldLawyerID: s.LawyerID}
	}

	return bson.M{}
}

// String returns the scope in audit-log form.
func (s Scope) String() string {
	switch {
	case s.FirmID != "":
		return "firm:" + s.FirmID
	case s.LawyerID != "":
		return "lawyer:" + s.LawyerID
	default:
		return "none"
	}
}

// scopeKey is an unexported key type to prevent external forgery.
type scopeKey struct{}

// WithScope stores the resolved tenant scope in the context. Called by the
// request-context resolver (HTTP middleware); application code only reads it.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext reads the resolved tenant scope.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(Scope)
	return scope, ok
}

// RequireScope reads the resolved tenant scope and validates it.
func RequireScope(ctx context.Context) (Scope, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return Scope{}, &ScopeError{msg: "tenancy: no tenant scope in context"}
	}

	if err := scope.Validate(); err != nil {
		return Scope{}, err
	}

	return scope, nil
}
