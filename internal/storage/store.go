package storage

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/tenancy"
)

// Store hands out guarded collections. It is the only way application code
// reaches storage; the raw mongo handles never leave this package.
type Store struct {
	client *Client
	reg    *tenancy.Registry
}

// NewStore builds the store over an open client and the skip registry.
func NewStore(client *Client, reg *tenancy.Registry) *Store {
	log.Info(context.Background(), "storage: isolation enforcement active",
		log.Strings("skip_listed", reg.SkipListed()),
	)

	return &Store{client: client, reg: reg}
}

// EnsureIndexes creates the tenant-owner indexes on every guarded
// collection. Failures are collected so one bad collection does not hide the
// rest.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	var errs *multierror.Error

	for _, entity := range []string{
		objects.CollClients,
		objects.CollCases,
		objects.CollInvoices,
		objects.CollLeads,
	} {
		if err := s.client.ensureTenantIndexes(ctx, entity); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("storage: failed to index %s: %w", entity, err))
		}
	}

	return errs.ErrorOrNil()
}

// Collection returns the guarded accessor for an entity type.
func (s *Store) Collection(entity string) *Collection {
	return NewCollection(entity, s.client.driver(entity), s.reg)
}

// Guarded domain collections.

func (s *Store) Clients() *Collection {
	return s.Collection(objects.CollClients)
}

func (s *Store) Cases() *Collection {
	return s.Collection(objects.CollCases)
}

func (s *Store) Invoices() *Collection {
	return s.Collection(objects.CollInvoices)
}

func (s *Store) Leads() *Collection {
	return s.Collection(objects.CollLeads)
}

// Skip-listed system collections.

func (s *Store) Users() *Collection {
	return s.Collection(objects.CollUsers)
}

func (s *Store) Sessions() *Collection {
	return s.Collection(objects.CollSessions)
}
