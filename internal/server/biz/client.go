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

type ClientServiceParams struct {
	fx.In

	Store *storage.Store
}

// ClientService manages the clients of one tenant. Every operation reads the
// resolved scope from the context; the storage guard refuses anything that
// slips through unscoped.
type ClientService struct {
	clients *storage.Collection
}

func NewClientService(params ClientServiceParams) *ClientService {
	return &ClientService{clients: params.Store.Clients()}
}

type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// CreateClient creates a client under the caller's tenant.
func (s *ClientService) CreateClient(ctx context.Context, input CreateClientInput) (*objects.Client, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	doc := scope.Filter()
	doc["name"] = input.Name
	doc["email"] = input.Email
	doc["phone"] = input.Phone
	doc["notes"] = input.Notes
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id, err := s.clients.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &objects.Client{
		ID: id,
		Tenant: objects.Tenant{
			FirmID:   scope.FirmID,
			LawyerID: scope.LawyerID,
		},
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListClients returns all clients of the caller's tenant.
func (s *ClientService) ListClients(ctx context.Context) ([]objects.Client, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	var clients []objects.Client

	if err := s.clients.Find(ctx, scope.Filter(), &clients); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

// GetClient fetches one client by id within the caller's tenant. A client
// owned by another tenant surfaces as storage.ErrNotFound.
func (s *ClientService) GetClient(ctx context.Context, id primitive.ObjectID) (*objects.Client, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	var client objects.Client

	if err := s.clients.FindByIDWithinScope(ctx, id, scope, &client); err != nil {
		return nil, err
	}

	return &client, nil
}

// UpdateClientNotes updates the free-form notes of one client.
func (s *ClientService) UpdateClientNotes(ctx context.Context, id primitive.ObjectID, notes string) error {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return err
	}

	filter := scope.Filter()
	filter["_id"] = id

	res, err := s.clients.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"notes": notes, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteClient removes one client of the caller's tenant.
func (s *ClientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return err
	}

	filter := scope.Filter()
	filter["_id"] = id

	deleted, err := s.clients.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if deleted == 0 {
		return storage.ErrNotFound
	}

	return nil
}
