package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/tenancy"
)

type DigestServiceParams struct {
	fx.In

	Store *storage.Store
}

// DigestService builds the scheduled overdue-invoice digest. The digest spans
// every tenant, so it is the one read path that legitimately runs under a
// bypass directive instead of a scope.
type DigestService struct {
	invoices *storage.Collection
}

func NewDigestService(params DigestServiceParams) *DigestService {
	return &DigestService{invoices: params.Store.Invoices()}
}

// TenantDigest is one tenant's slice of the overdue digest.
type TenantDigest struct {
	FirmID       string `json:"firmId,omitempty"`
	LawyerID     string `json:"lawyerId,omitempty"`
	OverdueCount int    `json:"overdueCount"`
	TotalCents   int64  `json:"totalCents"`
}

// OverdueDigest collects every unpaid invoice past its due date, across all
// tenants, grouped per tenant. It never runs on behalf of a user request.
func (s *DigestService) OverdueDigest(ctx context.Context, asOf time.Time) ([]TenantDigest, error) {
	overdue, err := tenancy.RunWithSystemBypass(ctx, "scheduled overdue invoice digest",
		func(ctx context.Context) ([]objects.Invoice, error) {
			var invoices []objects.Invoice

			filter := bson.M{
				"status":  bson.M{"$in": []objects.InvoiceStatus{objects.InvoiceStatusSent, objects.InvoiceStatusOverdue}},
				"dueDate": bson.M{"$lt": asOf},
			}

			if err := s.invoices.FindWithoutScope(ctx, filter, &invoices); err != nil {
				return nil, fmt.Errorf("failed to collect overdue invoices: %w", err)
			}

			return invoices, nil
		})
	if err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(overdue, func(inv objects.Invoice) objects.Tenant {
		return inv.Tenant
	})

	digests := lo.MapToSlice(grouped, func(tenant objects.Tenant, invoices []objects.Invoice) TenantDigest {
		return TenantDigest{
			FirmID:       tenant.FirmID,
			LawyerID:     tenant.LawyerID,
			OverdueCount: len(invoices),
			TotalCents: lo.SumBy(invoices, func(inv objects.Invoice) int64 {
				return inv.AmountCents
			}),
		}
	})

	log.Info(ctx, "digest: overdue invoices collected",
		log.Int("tenants", len(digests)),
		log.Int("invoices", len(overdue)),
	)

	return digests, nil
}

// MarkOverdue flips sent invoices past their due date to overdue, across all
// tenants. Runs from the scheduler, never from a request.
func (s *DigestService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := tenancy.RunWithSystemBypass(ctx, "scheduled overdue status sweep",
		func(ctx context.Context) (int64, error) {
			res, err := s.invoices.UpdateManyWithoutScope(ctx,
				bson.M{
					"status":  objects.InvoiceStatusSent,
					"dueDate": bson.M{"$lt": asOf},
				},
				bson.M{"$set": bson.M{
					"status":    objects.InvoiceStatusOverdue,
					"updatedAt": time.Now().UTC(),
				}},
			)
			if err != nil {
				return 0, fmt.Errorf("failed to sweep overdue invoices: %w", err)
			}

			return res.ModifiedCount, nil
		})
	if err != nil {
		return 0, err
	}

	return res, nil
}
