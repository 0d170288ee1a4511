package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
)

type UserServiceParams struct {
	fx.In

	Store *storage.Store
}

// UserService works on the identity collection. Users are skip-listed from
// tenant enforcement: they exist before any tenant is resolved, so these
// lookups run without a scope and without a bypass directive.
type UserService struct {
	users *storage.Collection
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{users: params.Store.Users()}
}

// FindByEmail looks a user up by email. No tenant scope applies.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*objects.User, error) {
	var user objects.User

	if err := s.users.FindOne(ctx, bson.M{"email": email}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// IssueResetToken stamps a fresh password-reset token on the account and
// returns it. The token expires after one hour.
func (s *UserService) IssueResetToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	expires := time.Now().UTC().Add(time.Hour)

	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"resetToken":   token,
			"resetExpires": expires,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	if res.MatchedCount == 0 {
		return "", storage.ErrNotFound
	}

	return token, nil
}
