// Package objects holds the domain records stored in MongoDB.
//
// Every tenant-owned record embeds Tenant: exactly one of firmId or lawyerId
// is set, matching the scope model enforced by the tenancy package. Identity
// and global configuration records (User, Session, AppConfig) carry no
// tenant owner and are skip-listed from enforcement.
package objects

// Collection names. The storage guard keys skip-list membership on these.
const (
	CollClients   = "clients"
	CollCases     = "cases"
	CollInvoices  = "invoices"
	CollLeads     = "leads"
	CollUsers     = "users"
	CollSessions  = "sessions"
	CollAppConfig = "app_config"
)

// SkipListed returns the entity types exempt from tenant isolation
// enforcement: identity, session and global configuration records.
func SkipListed() []string {
	return []string{CollUsers, CollSessions, CollAppConfig}
}

// Tenant is embedded by every tenant-owned record.
type Tenant struct {
	FirmID   string `bson:"firmId,omitempty"   json:"firmId,omitempty"`
	LawyerID string `bson:"lawyerId,omitempty" json:"lawyerId,omitempty"`
}
