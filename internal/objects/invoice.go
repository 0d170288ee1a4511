package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

type Invoice struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tenant `bson:",inline"`

	ClientID    primitive.ObjectID `bson:"clientId"          json:"clientId"`
	CaseID      primitive.ObjectID `bson:"caseId,omitempty"  json:"caseId,omitempty"`
	Number      string             `bson:"number"            json:"number"`
	Status      InvoiceStatus      `bson:"status"            json:"status"`
	AmountCents int64              `bson:"amountCents"       json:"amountCents"`
	Currency    string             `bson:"currency"          json:"currency"`
	DueDate     time.Time          `bson:"dueDate"           json:"dueDate"`
	PaidAt      *time.Time         `bson:"paidAt,omitempty"  json:"paidAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"         json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"         json:"updatedAt"`
}

// StatusTotal is one bucket of the invoice status aggregation.
type StatusTotal struct {
	Status      InvoiceStatus `bson:"_id"         json:"status"`
	Count       int64         `bson:"count"       json:"count"`
	AmountCents int64         `bson:"amountCents" json:"amountCents"`
}
