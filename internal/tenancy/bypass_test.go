package tenancy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
)

func TestWithBypass(t *testing.T) {
	ctx := NewSystemContext(context.Background())

	bypassCtx, err := WithBypass(ctx, "test-reason")
	if err != nil {
		t.Fatalf("WithBypass failed: %v", err)
	}

	info, ok := GetBypassInfo(bypassCtx)
	if !ok {
		t.Fatal("GetBypassInfo should return true after WithBypass")
	}

	if info.Reason != "test-reason" {
		t.Errorf("Reason = %v, want %v", info.Reason, "test-reason")
	}

	if !info.Principal.IsSystem() {
		t.Error("Principal should be system type")
	}

	if info.Timestamp.IsZero() || !info.Timestamp.Before(time.Now().Add(time.Second)) {
		t.Errorf("Timestamp should be set to a reasonable time, got %v", info.Timestamp)
	}
}

func TestWithBypass_NoPrincipal(t *testing.T) {
	_, err := WithBypass(context.Background(), "no-principal")
	if err == nil {
		t.Error("WithBypass should fail without a principal")
	}
}

func TestWithBypass_UserPrincipal(t *testing.T) {
	ctx := NewUserContext(context.Background(), "u-123")

	_, err := WithBypass(ctx, "user-operation")
	if err == nil {
		t.Error("WithBypass should fail for user principal")
	}
}

func TestRunWithBypass(t *testing.T) {
	ctx := NewSystemContext(context.Background())

	executed := false

	result, err := RunWithBypass(ctx, "test-closure", func(bypassCtx context.Context) (string, error) {
		executed = true

		if !IsBypassActive(bypassCtx) {
			t.Error("Bypass should be active inside closure")
		}

		return "success", nil
	})
	if err != nil {
		t.Fatalf("RunWithBypass failed: %v", err)
	}

	if !executed {
		t.Error("Closure should be executed")
	}

	if result != "success" {
		t.Errorf("Result = %v, want %v", result, "success")
	}

	// Bypass must not leak outside the closure.
	if IsBypassActive(ctx) {
		t.Error("Bypass should not be active outside closure")
	}
}

func TestRunWithBypass_ErrorPropagation(t *testing.T) {
	ctx := NewSystemContext(context.Background())

	expectedErr := context.Canceled

	_, err := RunWithBypass(ctx, "test-error", func(bypassCtx context.Context) (string, error) {
		return "", expectedErr
	})
	if !errors.Is(err, expectedErr) {
		t.Errorf("Error should be propagated: got %v, want %v", err, expectedErr)
	}
}

func TestRunWithSystemBypass(t *testing.T) {
	// No principal needed up front; the system principal is declared inside.
	result, err := RunWithSystemBypass(context.Background(), "digest", func(bypassCtx context.Context) (bool, error) {
		return IsBypassActive(bypassCtx), nil
	})
	if err != nil {
		t.Fatalf("RunWithSystemBypass failed: %v", err)
	}

	if !result {
		t.Error("Bypass should be active inside closure")
	}
}

func TestIsBypassActive(t *testing.T) {
	ctx := context.Background()

	if IsBypassActive(ctx) {
		t.Error("IsBypassActive should return false when not set")
	}

	bypassCtx, err := WithBypass(NewSystemContext(ctx), "test")
	if err != nil {
		t.Fatalf("WithBypass failed: %v", err)
	}

	if !IsBypassActive(bypassCtx) {
		t.Error("IsBypassActive should return true after WithBypass")
	}
}

func TestGetBypassInfo_NotSet(t *testing.T) {
	_, ok := GetBypassInfo(context.Background())
	if ok {
		t.Error("GetBypassInfo should return false when not set")
	}
}

func TestRequireSystemPrincipal(t *testing.T) {
	systemCtx := NewSystemContext(context.Background())
	if err := RequireSystemPrincipal(systemCtx); err != nil {
		t.Errorf("RequireSystemPrincipal should pass for system principal: %v", err)
	}

	userCtx := NewUserContext(context.Background(), "u-123")
	if err := RequireSystemPrincipal(userCtx); err == nil {
		t.Error("RequireSystemPrincipal should fail for user principal")
	}

	if err := RequireSystemPrincipal(context.Background()); err == nil {
		t.Error("RequireSystemPrincipal should fail when no principal")
	}
}

func TestSetAuditLogger(t *testing.T) {
	originalLogger := auditLogger

	defer func() {
		auditLogger = originalLogger
	}()

	var capturedRecord bypassAuditRecord

	SetAuditLogger(func(ctx context.Context, record bypassAuditRecord) {
		capturedRecord = record
	})

	ctx := NewSystemContext(context.Background())

	_, err := WithBypass(ctx, "custom-audit-test")
	if err != nil {
		t.Fatalf("WithBypass failed: %v", err)
	}

	if capturedRecord.Reason != "custom-audit-test" {
		t.Errorf("Custom logger should be called with reason: got %v", capturedRecord.Reason)
	}

	if capturedRecord.Principal != "system" {
		t.Errorf("Custom logger should capture principal: got %v", capturedRecord.Principal)
	}

	if capturedRecord.Operation != "bypass" {
		t.Errorf("Operation should be 'bypass': got %v", capturedRecord.Operation)
	}

	if capturedRecord.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestBypassScopeIsolation(t *testing.T) {
	ctx := NewSystemContext(context.Background())

	type testKey struct{}

	ctx = context.WithValue(ctx, testKey{}, "outer")

	var innerValue string

	_, _ = RunWithBypass(ctx, "scope-test", func(bypassCtx context.Context) (string, error) {
		if v, ok := bypassCtx.Value(testKey{}).(string); ok {
			innerValue = v
		}

		return "done", nil
	})

	if innerValue != "outer" {
		t.Errorf("Inner context should inherit outer values: got %v", innerValue)
	}
}

func TestWithPrincipal_SetOnce(t *testing.T) {
	ctx, err := WithPrincipal(context.Background(), Principal{Type: PrincipalTypeUser, UserID: lo.ToPtr("u-1")})
	if err != nil {
		t.Fatalf("WithPrincipal failed: %v", err)
	}

	// Same principal is idempotent.
	if _, err := WithPrincipal(ctx, Principal{Type: PrincipalTypeUser, UserID: lo.ToPtr("u-1")}); err != nil {
		t.Errorf("Same principal should be idempotent: %v", err)
	}

	// A different principal is rejected.
	if _, err := WithPrincipal(ctx, Principal{Type: PrincipalTypeSystem}); err == nil {
		t.Error("WithPrincipal should reject a conflicting principal")
	}
}
