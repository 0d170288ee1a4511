package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. Users sign in before any tenant is resolved,
// and one account may belong to several firms, so the collection carries no
// tenant owner and is skip-listed from isolation enforcement.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Email        string     `bson:"email"                    json:"email"`
	FullName     string     `bson:"fullName"                 json:"fullName"`
	PasswordHash string     `bson:"passwordHash"             json:"-"`
	FirmIDs      []string   `bson:"firmIds,omitempty"        json:"firmIds,omitempty"`
	LawyerID     string     `bson:"lawyerId,omitempty"       json:"lawyerId,omitempty"`
	ResetToken   string     `bson:"resetToken,omitempty"     json:"-"`
	ResetExpires *time.Time `bson:"resetExpires,omitempty"   json:"-"`
	CreatedAt    time.Time  `bson:"createdAt"                json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"                json:"updatedAt"`
}
