package biz

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/tenancy"
)

type CaseServiceParams struct {
	fx.In

	Store *storage.Store
}

type CaseService struct {
	cases *storage.Collection
}

func NewCaseService(params CaseServiceParams) *CaseService {
	return &CaseService{cases: params.Store.Cases()}
}

type OpenCaseInput struct {
	ClientID primitive.ObjectID `json:"clientId" binding:"required"`
	Title    string             `json:"title"    binding:"required"`
	Number   string             `json:"number"`
	Court    string             `json:"court"`
}

// OpenCase opens a case for a client of the caller's tenant.
func (s *CaseService) OpenCase(ctx context.Context, input OpenCaseInput) (*objects.Case, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	doc := scope.Filter()
	doc["clientId"] = input.ClientID
	doc["title"] = input.Title
	doc["number"] = input.Number
	doc["court"] = input.Court
	doc["status"] = objects.CaseStatusOpen
	doc["openedAt"] = now
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id, err := s.cases.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to open case: %w", err)
	}

	return &objects.Case{
		ID: id,
		Tenant: objects.Tenant{
			FirmID:   scope.FirmID,
			LawyerID: scope.LawyerID,
		},
		ClientID:  input.ClientID,
		Title:     input.Title,
		Number:    input.Number,
		Court:     input.Court,
		Status:    objects.CaseStatusOpen,
		OpenedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListCases returns the tenant's cases, optionally filtered by status.
func (s *CaseService) ListCases(ctx context.Context, status objects.CaseStatus) ([]objects.Case, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	filter := scope.Filter()
	if status != "" {
		filter["status"] = status
	}

	var cases []objects.Case

	if err := s.cases.Find(ctx, filter, &cases); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	return cases, nil
}

// GetCase fetches one case by id within the caller's tenant.
func (s *CaseService) GetCase(ctx context.Context, id primitive.ObjectID) (*objects.Case, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	var kase objects.Case

	if err := s.cases.FindByIDWithinScope(ctx, id, scope, &kase); err != nil {
		return nil, err
	}

	return &kase, nil
}

// CloseCase marks a case closed.
func (s *CaseService) CloseCase(ctx context.Context, id primitive.ObjectID) error {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return err
	}

	filter := scope.Filter()
	filter["_id"] = id

	now := time.Now().UTC()

	res, err := s.cases.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"status":    objects.CaseStatusClosed,
			"closedAt":  now,
			"updatedAt": now,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to close case: %w", err)
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}
