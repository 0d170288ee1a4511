package tenancy

import (
	"context"
)

// NewTestContext creates context with Test principal (only for test environment).
func NewTestContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeTest})
}

// WithTestBypass creates context with Test principal and enforcement bypass.
// Used by tests that seed fixtures across tenants.
func WithTestBypass(ctx context.Context) context.Context {
	bypassCtx, _ := WithBypass(NewTestContext(ctx), "test")
	return bypassCtx
}
