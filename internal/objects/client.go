package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tenant `bson:",inline"`

	Name      string    `bson:"name"            json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt"       json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"       json:"updatedAt"`
}
