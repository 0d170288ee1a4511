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

func newLeadService(leads, clients *storagetest.MemDriver) *LeadService {
	return &LeadService{
		leads:   guarded(objects.CollLeads, leads),
		clients: guarded(objects.CollClients, clients),
	}
}

func TestLeadService_ConvertLead(t *testing.T) {
	leads := &storagetest.MemDriver{}
	clients := &storagetest.MemDriver{}

	leads.Seed(bson.M{
		"firmId": "F1",
		"name":   "Ada Brennan",
		"email":  "ada@example.com",
		"source": "referral",
		"status": objects.LeadStatusNew,
	})

	id := leads.Docs[0]["_id"].(primitive.ObjectID)
	svc := newLeadService(leads, clients)

	client, err := svc.ConvertLead(firmCtx("F1"), id)
	require.NoError(t, err)

	assert.Equal(t, "F1", client.FirmID)
	assert.Equal(t, "Ada Brennan", client.Name)

	require.Len(t, clients.Docs, 1)
	assert.Equal(t, "F1", clients.Docs[0]["firmId"])

	assert.Equal(t, objects.LeadStatusConverted, leads.Docs[0]["status"])
	assert.Contains(t, leads.Calls, "bulkWrite")
}

func TestLeadService_ConvertLeadCrossTenant(t *testing.T) {
	leads := &storagetest.MemDriver{}
	clients := &storagetest.MemDriver{}

	leads.Seed(bson.M{
		"firmId": "F1",
		"name":   "Ada Brennan",
		"status": objects.LeadStatusNew,
	})

	id := leads.Docs[0]["_id"].(primitive.ObjectID)
	svc := newLeadService(leads, clients)

	_, err := svc.ConvertLead(firmCtx("F2"), id)
	require.ErrorIs(t, err, storage.ErrNotFound)

	assert.Empty(t, clients.Docs)
	assert.Equal(t, objects.LeadStatusNew, leads.Docs[0]["status"])
}

func TestLeadService_ConvertLeadTwice(t *testing.T) {
	leads := &storagetest.MemDriver{}

	leads.Seed(bson.M{
		"firmId": "F1",
		"name":   "Ada Brennan",
		"status": objects.LeadStatusConverted,
	})

	id := leads.Docs[0]["_id"].(primitive.ObjectID)
	svc := newLeadService(leads, &storagetest.MemDriver{})

	_, err := svc.ConvertLead(firmCtx("F1"), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already converted")
}

func TestLeadService_DiscardLostLeads(t *testing.T) {
	leads := &storagetest.MemDriver{}

	leads.Seed(
		bson.M{"firmId": "F1", "name": "a", "status": objects.LeadStatusLost},
		bson.M{"firmId": "F1", "name": "b", "status": objects.LeadStatusLost},
		bson.M{"firmId": "F1", "name": "c", "status": objects.LeadStatusNew},
		bson.M{"firmId": "F2", "name": "d", "status": objects.LeadStatusLost},
	)

	svc := newLeadService(leads, &storagetest.MemDriver{})

	deleted, err := svc.DiscardLostLeads(firmCtx("F1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	require.Len(t, leads.Docs, 2)
	for _, doc := range leads.Docs {
		if doc["firmId"] == "F1" {
			assert.Equal(t, objects.LeadStatusNew, doc["status"])
		}
	}
}
