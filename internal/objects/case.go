package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CaseStatus string

const (
	CaseStatusOpen     CaseStatus = "open"
	CaseStatusPending  CaseStatus = "pending"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusArchived CaseStatus = "archived"
)

type Case struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tenant `bson:",inline"`

	ClientID  primitive.ObjectID `bson:"clientId"           json:"clientId"`
	Title     string             `bson:"title"              json:"title"`
	Number    string             `bson:"number,omitempty"   json:"number,omitempty"`
	Status    CaseStatus         `bson:"status"             json:"status"`
	Court     string             `bson:"court,omitempty"    json:"court,omitempty"`
	OpenedAt  time.Time          `bson:"openedAt"           json:"openedAt"`
	ClosedAt  *time.Time         `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"          json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"          json:"updatedAt"`
}
