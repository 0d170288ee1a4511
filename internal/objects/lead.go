package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

type Lead struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tenant `bson:",inline"`

	Name      string     `bson:"name"              json:"name"`
	Email     string     `bson:"email,omitempty"   json:"email,omitempty"`
	Phone     string     `bson:"phone,omitempty"   json:"phone,omitempty"`
	Source    string     `bson:"source,omitempty"  json:"source,omitempty"`
	Status    LeadStatus `bson:"status"            json:"status"`
	CreatedAt time.Time  `bson:"createdAt"         json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"         json:"updatedAt"`
}
