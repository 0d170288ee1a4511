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

type InvoiceServiceParams struct {
	fx.In

	Store *storage.Store
}

type InvoiceService struct {
	invoices *storage.Collection
}

func NewInvoiceService(params InvoiceServiceParams) *InvoiceService {
	return &InvoiceService{invoices: params.Store.Invoices()}
}

type CreateInvoiceInput struct {
	ClientID    primitive.ObjectID `json:"clientId" binding:"required"`
	CaseID      primitive.ObjectID `json:"caseId"`
	Number      string             `json:"number"   binding:"required"`
	AmountCents int64              `json:"amountCents" binding:"required"`
	Currency    string             `json:"currency"`
	DueDate     time.Time          `json:"dueDate"`
}

// CreateInvoice creates a draft invoice under the caller's tenant.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*objects.Invoice, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()

	doc := scope.Filter()
	doc["clientId"] = input.ClientID
	doc["caseId"] = input.CaseID
	doc["number"] = input.Number
	doc["status"] = objects.InvoiceStatusDraft
	doc["amountCents"] = input.AmountCents
	doc["currency"] = currency
	doc["dueDate"] = input.DueDate
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id, err := s.invoices.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &objects.Invoice{
		ID: id,
		Tenant: objects.Tenant{
			FirmID:   scope.FirmID,
			LawyerID: scope.LawyerID,
		},
		ClientID:    input.ClientID,
		CaseID:      input.CaseID,
		Number:      input.Number,
		Status:      objects.InvoiceStatusDraft,
		AmountCents: input.AmountCents,
		Currency:    currency,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ListInvoices returns the tenant's invoices, optionally filtered by status.
func (s *InvoiceService) ListInvoices(ctx context.Context, status objects.InvoiceStatus) ([]objects.Invoice, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	filter := scope.Filter()
	if status != "" {
		filter["status"] = status
	}

	var invoices []objects.Invoice

	if err := s.invoices.Find(ctx, filter, &invoices); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, nil
}

// GetInvoice fetches one invoice by id within the caller's tenant.
func (s *InvoiceService) GetInvoice(ctx context.Context, id primitive.ObjectID) (*objects.Invoice, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	var invoice objects.Invoice

	if err := s.invoices.FindByIDWithinScope(ctx, id, scope, &invoice); err != nil {
		return nil, err
	}

	return &invoice, nil
}

// MarkPaid marks one invoice paid. An invoice owned by another tenant is
// simply not matched.
func (s *InvoiceService) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return err
	}

	filter := scope.Filter()
	filter["_id"] = id

	now := time.Now().UTC()

	res, err := s.invoices.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"status":    objects.InvoiceStatusPaid,
			"paidAt":    now,
			"updatedAt": now,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// StatusTotals aggregates the tenant's invoices per status. The scope is the
// first pipeline stage; the guard rejects any pipeline shaped otherwise.
func (s *InvoiceService) StatusTotals(ctx context.Context) ([]objects.StatusTotal, error) {
	scope, err := tenancy.RequireScope(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scope.Filter()}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$status",
			"count":       bson.M{"$sum": 1},
			"amountCents": bson.M{"$sum": "$amountCents"},
		}}},
	}

	var totals []objects.StatusTotal

	if err := s.invoices.Aggregate(ctx, pipeline, &totals); err != nil {
		return nil, fmt.Errorf("failed to aggregate invoice totals: %w", err)
	}

	return totals, nil
}
