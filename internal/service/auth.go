package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studiosync/internal/credential"
	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// minSecretLen is the policy minimum for permanent passwords. Temporary
// onboarding secrets are exactly 8 hex characters and meet it too.
const minSecretLen = 8

// AuthService defines authentication and account activation use cases.
type AuthService interface {
	// Login verifies a username/password pair and returns the identity
	// descriptor consumed by authorization decisions. The descriptor's
	// Active flag tells the UI to force password setup before granting
	// document access.
	Login(ctx context.Context, username, secret string) (*model.Identity, error)

	// SetupPassword stores a new permanent credential for the account and
	// marks it active. Calling it on an already-active account rotates the
	// password; there is no check that the account was inactive.
	SetupPassword(ctx context.Context, userID, newSecret string) error
}

type authService struct {
	users  repository.UserRepository
	hasher credential.Hasher
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, hasher credential.Hasher) AuthService {
	return &authService{users: users, hasher: hasher}
}

func (s *authService) Login(ctx context.Context, username, secret string) (*model.Identity, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Burn a verification against the dummy digest so unknown usernames
		// take as long as wrong passwords.
		s.hasher.Verify(secret, credential.DummyDigest)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user.Identity(), nil
}

func (s *authService) SetupPassword(ctx context.Context, userID, newSecret string) error {
	if userID == "" {
		return ErrIDRequired
	}
	if len(newSecret) < minSecretLen {
		return ErrWeakCredential
	}

	hash, err := s.hasher.Hash(newSecret)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.SetPassword(ctx, userID, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownAccount
		}
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}
