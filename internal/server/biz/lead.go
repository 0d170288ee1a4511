package biz

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/tenancy"
)

type LeadServiceParams struct {
	fx.In

	Store *storage.Store
}

type LeadService struct {
	leads   *storage.Collection
	clients *storage.Collection
}

func NewLeadService(params LeadServiceParams) *LeadService {
	return &LeadService{
		leads:   params.Store.Leads(),
		clients: params.Store.Clients(),
	}
}

type CreateLeadInput struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
}

// CreateLead records an incoming lead under the caller's tenant.
func (s *LeadService) CreateLead(ctx context.Context, input CreateLeadInput) (*objects.Lead, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	doc := scope.Filter()
	doc["name"] = input.Name
	doc["email"] = input.Email
	doc["phone"] = input.Phone
	doc["source"] = input.Source
	doc["status"] = objects.LeadStatusNew
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id, err := s.leads.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return &objects.Lead{
		ID: id,
		Tenant: objects.Tenant{
			FirmID:   scope.FirmID,
			LawyerID: scope.LawyerID,
		},
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Source:    input.Source,
		Status:    objects.LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListLeads returns the tenant's leads, optionally filtered by status.
func (s *LeadService) ListLeads(ctx context.Context, status objects.LeadStatus) ([]objects.Lead, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	filter := scope.Filter()
	if status != "" {
		filter["status"] = status
	}

	var leads []objects.Lead

	if err := s.leads.Find(ctx, filter, &leads); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, nil
}

// ConvertLead turns a lead into a client. The new client document and the
// status flip on the lead are submitted as one bulk batch against the leads
// collection's tenant: every sub-operation carries the caller's scope, so the
// whole batch passes or fails together at the guard.
func (s *LeadService) ConvertLead(ctx context.Context, id primitive.ObjectID) (*objects.Client, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	var lead objects.Lead

	if err := s.leads.FindByIDWithinScope(ctx, id, scope, &lead); err != nil {
		return nil, err
	}

	if lead.Status == objects.LeadStatusConverted {
		return nil, fmt.Errorf("lead %s is already converted", id.Hex())
	}

	now := time.Now().UTC()
	clientID := primitive.NewObjectID()

	clientDoc := scope.Filter()
	clientDoc["_id"] = clientID
	clientDoc["name"] = lead.Name
	clientDoc["email"] = lead.Email
	clientDoc["phone"] = lead.Phone
	clientDoc["notes"] = fmt.Sprintf("converted from lead (%s)", lead.Source)
	clientDoc["createdAt"] = now
	clientDoc["updatedAt"] = now

	if _, err := s.clients.InsertOne(ctx, clientDoc); err != nil {
		return nil, fmt.Errorf("failed to create client from lead: %w", err)
	}

	leadFilter := scope.Filter()
	leadFilter["_id"] = id

	models := []mongo.WriteModel{
		mongo.NewUpdateOneModel().
			SetFilter(leadFilter).
			SetUpdate(bson.M{"$set": bson.M{
				"status":    objects.LeadStatusConverted,
				"updatedAt": now,
			}}),
	}

	if _, err := s.leads.BulkWrite(ctx, models); err != nil {
		return nil, fmt.Errorf("failed to mark lead converted: %w", err)
	}

	return &objects.Client{
		ID: clientID,
		Tenant: objects.Tenant{
			FirmID:   scope.FirmID,
			LawyerID: scope.LawyerID,
		},
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Notes:     clientDoc["notes"].(string),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DiscardLostLeads deletes every lead of the caller's tenant that has been
// marked lost. The batch runs through the bulk guard like any other write.
func (s *LeadService) DiscardLostLeads(ctx context.Context) (int64, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return 0, err
	}

	filter := scope.Filter()
	filter["status"] = objects.LeadStatusLost

	models := []mongo.WriteModel{
		mongo.NewDeleteManyModel().SetFilter(filter),
	}

	res, err := s.leads.BulkWrite(ctx, models)
	if err != nil {
		return 0, fmt.Errorf("failed to discard lost leads: %w", err)
	}

	return res.DeletedCount, nil
}
