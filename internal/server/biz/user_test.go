package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/storage/storagetest"
)

func newUserService(drv *storagetest.MemDriver) *UserService {
	return &UserService{users: guarded(objects.CollUsers, drv)}
}

// Identity lookups run before any tenant is resolved, so they must work on a
// bare context with no scope and no bypass.
func TestUserService_FindByEmail(t *testing.T) {
	drv := &storagetest.MemDriver{}
	drv.Seed(bson.M{
		"email":    "ada@example.com",
		"fullName": "Ada Brennan",
	})

	svc := newUserService(drv)

	user, err := svc.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Brennan", user.FullName)

	_, err = svc.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserService_IssueResetToken(t *testing.T) {
	drv := &storagetest.MemDriver{}
	drv.Seed(bson.M{
		"email":    "ada@example.com",
		"fullName": "Ada Brennan",
	})

	svc := newUserService(drv)

	token, err := svc.IssueResetToken(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, drv.Docs[0]["resetToken"])

	_, err = svc.IssueResetToken(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
