package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestScopeValidate(t *testing.T) {
	tests := []struct {
		name    string
		scope   Scope
		wantErr bool
	}{
		{name: "firm scope", scope: FirmScope("F1"), wantErr: false},
		{name: "lawyer scope", scope: LawyerScope("L1"), wantErr: false},
		{name: "empty scope", scope: Scope{}, wantErr: true},
		{name: "both identifiers set", scope: Scope{FirmID: "F1", LawyerID: "L1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.wantErr {
				var scopeErr *ScopeError

				require.Error(t, err)
				assert.True(t, errors.As(err, &scopeErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScopeFilter(t *testing.T) {
	assert.Equal(t, bson.M{"firmId": "F1"}, FirmScope("F1").Filter())
	assert.Equal(t, bson.M{"lawyerId": "L1"}, LawyerScope("L1").Filter())
	assert.Equal(t, bson.M{}, Scope{}.Filter())
}

func TestScopeFilterDoesNotAliasState(t *testing.T) {
	scope := FirmScope("F1")

	filter := scope.Filter()
	filter["status"] = "paid"

	assert.Equal(t, bson.M{"firmId": "F1"}, scope.Filter())
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "firm:F1", FirmScope("F1").String())
	assert.Equal(t, "lawyer:L1", LawyerScope("L1").String())
	assert.Equal(t, "none", Scope{}.String())
}

func TestScopeContext(t *testing.T) {
	ctx := context.Background()

	_, ok := ScopeFromContext(ctx)
	assert.False(t, ok)

	ctx = WithScope(ctx, FirmScope("F1"))

	scope, ok := ScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "F1", scope.FirmID)
}

func TestRequireScope(t *testing.T) {
	t.Run("missing scope", func(t *testing.T) {
		_, err := RequireScope(context.Background())

		var scopeErr *ScopeError

		require.Error(t, err)
		assert.True(t, errors.As(err, &scopeErr))
	})

	t.Run("invalid scope", func(t *testing.T) {
		ctx := WithScope(context.Background(), Scope{})
		_, err := RequireScope(ctx)
		require.Error(t, err)
	})

	t.Run("valid scope", func(t *testing.T) {
		ctx := WithScope(context.Background(), LawyerScope("L1"))

		scope, err := RequireScope(ctx)
		require.NoError(t, err)
		assert.Equal(t, "L1", scope.LawyerID)
	})
}
