// Package service contains the application's business logic on top of the
// repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// AccountService handles registration and credential checks.
type AccountService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Register creates a new user with a hashed credential. The raw secret is
// discarded as soon as the hash exists.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("name", in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the matching user. Unknown
// email and wrong password produce distinct user-facing messages.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError("That email does not exist, please try again.")
	}
	if !auth.CheckPassword(in.Password, user.Password) {
		return nil, models.NewInvalidCredentialsError("Password incorrect, please try again")
	}
	return user, nil
}
