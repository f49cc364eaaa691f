// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"strings"

	"loppis/internal/auth"
	"loppis/internal/models"
	"loppis/internal/repository"
	"loppis/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService is the credential store: it owns registration, credential
// verification, and bearer token validation.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// RegisterInput carries the signup payload. There is no token or ID field:
// both are always generated here, never accepted from the client.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAuthService returns a new AuthService with the given bcrypt work factor.
func NewAuthService(userRepo repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// normalizeEmail lowercases and trims an email address so lookups and the
// unique index both operate on a canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and a freshly issued
// access token. Name and email collisions surface as DuplicateField errors
// from the repository; the store, not this method, arbitrates races between
// concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	email := normalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	token, err := auth.NewAccessToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:        in.Name,
		Email:       email,
		Password:    string(hashed),
		AccessToken: token,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyCredentials checks an email/password pair and returns the matching
// user, including the access token issued at registration. An unknown email
// and a wrong password produce the same error so the response does not reveal
// which part failed.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	return user, nil
}

// ValidateToken resolves the user whose access token exactly equals the
// presented token. A miss returns (nil, nil): an unknown token is an expected
// outcome, not an error.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.userRepo.GetByToken(ctx, token)
}
