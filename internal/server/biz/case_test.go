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

func newCaseService(drv *storagetest.MemDriver) *CaseService {
	return &CaseService{cases: guarded(objects.CollCases, drv)}
}

func TestCaseService_OpenAndClose(t *testing.T) {
	drv := &storagetest.MemDriver{}
	svc := newCaseService(drv)
	ctx := lawyerCtx("L1")

	opened, err := svc.OpenCase(ctx, OpenCaseInput{
		ClientID: primitive.NewObjectID(),
		Title:    "Brennan v. Holt",
	})
	require.NoError(t, err)
	assert.Equal(t, "L1", opened.LawyerID)
	assert.Equal(t, objects.CaseStatusOpen, opened.Status)

	require.NoError(t, svc.CloseCase(ctx, opened.ID))
	assert.Equal(t, objects.CaseStatusClosed, drv.Docs[0]["status"])
}

func TestCaseService_ListByStatus(t *testing.T) {
	drv := &storagetest.MemDriver{}
	drv.Seed(
		bson.M{"lawyerId": "L1", "title": "a", "status": objects.CaseStatusOpen},
		bson.M{"lawyerId": "L1", "title": "b", "status": objects.CaseStatusClosed},
		bson.M{"firmId": "F1", "title": "c", "status": objects.CaseStatusOpen},
	)

	svc := newCaseService(drv)

	open, err := svc.ListCases(lawyerCtx("L1"), objects.CaseStatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "a", open[0].Title)
}

func TestCaseService_CloseCrossTenant(t *testing.T) {
	drv := &storagetest.MemDriver{}
	drv.Seed(bson.M{"firmId": "F1", "title": "a", "status": objects.CaseStatusOpen})

	id := drv.Docs[0]["_id"].(primitive.ObjectID)
	svc := newCaseService(drv)

	err := svc.CloseCase(firmCtx("F2"), id)
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, objects.CaseStatusOpen, drv.Docs[0]["status"])
}
