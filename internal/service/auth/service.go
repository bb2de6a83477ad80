// Package auth implements the credential manager: a thin wrapper over
// sign-in/sign-up/sign-out against the identity provider, with
// fail-fast input validation and typed error classification.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
	"personal-site/internal/service/identity"
)

// IdentityProvider is the boundary to the external identity system.
// Implementations own session state and publish every session
// transition (sign-in, sign-out, refresh) on their identity stream.
type IdentityProvider interface {
	// SignIn authenticates an email/password pair. Implementations
	// return entity.ErrInvalidCredentials for rejected pairs.
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)

	// SignUp registers a new account. Implementations return
	// entity.ErrAccountExists when the email is already taken.
	SignUp(ctx context.Context, email, password string) (*entity.Identity, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// Identities is the stream of session transitions.
	Identities() *identity.Stream
}

// Service validates credentials locally, delegates to the provider, and
// provisions the user profile on registration. Validation failures
// never reach the provider; provider errors pass through classified as
// entity.ErrInvalidCredentials, entity.ErrAccountExists, or wrapped
// with their underlying message for diagnostics.
type Service struct {
	Provider IdentityProvider
	Profiles repository.ProfileRepository
	Logger   *slog.Logger
}

// New creates a credential manager.
func New(provider IdentityProvider, profiles repository.ProfileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Provider: provider, Profiles: profiles, Logger: logger}
}

// SignIn authenticates against the identity provider.
func (s *Service) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	if err := validate(email, password); err != nil {
		return nil, err
	}

	id, err := s.Provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return id, nil
}

// SignUp registers a new account and provisions its user profile with
// role "user". This is the only code path that creates profiles. If the
// profile write fails after the account was created, the error is
// surfaced but the account is not rolled back: the identity then
// resolves to the null role until an operator writes the profile.
func (s *Service) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	if err := validate(email, password); err != nil {
		return nil, err
	}

	id, err := s.Provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	profile := &entity.UserProfile{ID: id.ID, Email: email, Role: entity.RoleUser}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		s.Logger.Error("account created but profile provisioning failed; identity resolves to no role until remediated",
			slog.String("identity_id", id.ID),
			slog.Any("error", err))
		return nil, fmt.Errorf("provision profile: %w", err)
	}
	return id, nil
}

// SignOut ends the current session.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.Provider.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func validate(email, password string) error {
	if err := entity.ValidateEmail(email); err != nil {
		return err
	}
	return entity.ValidatePassword(password)
}
