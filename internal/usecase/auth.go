package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gigmarket/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Registration carries sign-up fields.
type Registration struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

// Register creates a customer or freelancer account and returns auth token.
// Admin accounts are provisioned out of band.
func (u *AuthUseCase) Register(ctx context.Context, reg Registration) (*model.User, string, error) {
	email, err := normalizeEmail(reg.Email)
	if err != nil {
		return nil, "", err
	}
	name, err := requireText("name", reg.Name, maxNameLength)
	if err != nil {
		return nil, "", err
	}
	switch reg.Role {
	case model.RoleCustomer, model.RoleFreelancer:
	case model.RoleAdmin, model.RoleUnknown:
		return nil, "", fmt.Errorf("%w: role must be CUSTOMER or FREELANCER", domainErrors.ErrValidation)
	default:
		return nil, "", fmt.Errorf("%w: unknown role", domainErrors.ErrValidation)
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooShort) || errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, "", fmt.Errorf("%w: %v", domainErrors.ErrValidation, err)
		}
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{Email: email, Name: name, PasswordHash: hash, Role: reg.Role})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("%w: email is already registered", domainErrors.ErrAlreadyExists)
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.Identity())
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.Identity())
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves a bearer token to the caller identity.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
