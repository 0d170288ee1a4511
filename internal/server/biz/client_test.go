package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/storage/storagetest"
)

func newClientService(drv *storagetest.MemDriver) *ClientService {
	return &ClientService{clients: guarded(objects.CollClients, drv)}
}

func TestClientService_Lifecycle(t *testing.T) {
	drv := &storagetest.MemDriver{}
	svc := newClientService(drv)
	ctx := firmCtx("F1")

	created, err := svc.CreateClient(ctx, CreateClientInput{
		Name:  "Ada Brennan",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "F1", created.FirmID)

	clients, err := svc.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	fetched, err := svc.GetClient(ctx, clients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Brennan", fetched.Name)

	require.NoError(t, svc.UpdateClientNotes(ctx, fetched.ID, "prefers email"))
	assert.Equal(t, "prefers email", drv.Docs[0]["notes"])

	require.NoError(t, svc.DeleteClient(ctx, fetched.ID))
	assert.Empty(t, drv.Docs)
}

func TestClientService_CrossTenantMiss(t *testing.T) {
	drv := &storagetest.MemDriver{}
	drv.Seed(bson.M{"firmId": "F1", "name": "Ada Brennan"})

	id := drv.Docs[0]["_id"].(primitive.ObjectID)
	svc := newClientService(drv)

	_, err := svc.GetClient(firmCtx("F2"), id)
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = svc.UpdateClientNotes(lawyerCtx("L1"), id, "x")
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = svc.DeleteClient(firmCtx("F2"), id)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.Len(t, drv.Docs, 1)
}
