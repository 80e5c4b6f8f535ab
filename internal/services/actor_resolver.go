package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// ActorResolver turns the authenticated subject from the JWT into an
// Actor by loading the user record. A token for a user that no longer
// exists is treated as not-found, not as an anonymous actor.
type ActorResolver struct {
	userRepo repositories.UserRepository
}

func NewActorResolver(userRepo repositories.UserRepository) *ActorResolver {
	return &ActorResolver{userRepo: userRepo}
}

func (r *ActorResolver) Resolve(ctx context.Context, userID string) (Actor, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Actor{}, fmt.Errorf("invalid user ID format: %w", err)
	}

	user, err := r.userRepo.GetByID(ctx, uid)
	if err != nil {
		return Actor{}, err
	}
	if user == nil {
		return Actor{}, utils.ErrNotFound
	}

	return Actor{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}
