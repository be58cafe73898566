package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
)

// RegisterInput carries a registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate checks field constraints before any store access.
func (in RegisterInput) Validate() error {
	username := strings.TrimSpace(in.Username)
	if len(username) < 3 || len(username) > 80 {
		return fmt.Errorf("%w: username must be 3-80 characters", domain.ErrValidation)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}
	return nil
}

// Register creates an account with a bcrypt-hashed credential. A taken
// username or email surfaces as domain.ErrConflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account, err := s.accounts.Create(ctx, &domain.Account{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", account.ID).Msg("account registered")
	return account, nil
}

// LoginInput carries a login form.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies the credential against the stored hash. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}
