package repository

import (
	"context"

	"personal-site/internal/domain/entity"
)

// ProfileRepository persists per-identity user profiles.
//
// Get returns (nil, nil) for an identity that has no profile yet. That
// case is meaningful: the role resolver treats a missing profile as the
// null role, never as an ordinary user.
type ProfileRepository interface {
	Get(ctx context.Context, id string) (*entity.UserProfile, error)
	// Create writes the profile once, at registration time. It is the
	// only code path that creates profiles.
	Create(ctx context.Context, profile *entity.UserProfile) error
}
