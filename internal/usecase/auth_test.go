package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	pkgAuth "github.com/polkiloo/gigmarket/internal/pkg/auth"
	testhelpers "github.com/polkiloo/gigmarket/internal/test"
)

func newAuthUseCase(repo *testhelpers.UserRepositoryStub) *AuthUseCase {
	return NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
}

func customerRegistration(email string) Registration {
	return Registration{Email: email, Password: "password", Name: "Alice", Role: model.RoleCustomer}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	user, token, err := uc.Register(ctx, customerRegistration("  Alice@Example.com "))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "CUSTOMER:"+user.ID {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if stored.Role != model.RoleCustomer || stored.Name != "Alice" {
		t.Fatalf("unexpected stored user %+v", stored)
	}
}

func TestAuthUseCaseRegisterFreelancer(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	reg := customerRegistration("bob@example.com")
	reg.Role = model.RoleFreelancer

	_, token, err := uc.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	identity, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if identity.Role != model.RoleFreelancer {
		t.Fatalf("expected freelancer identity, got %+v", identity)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, customerRegistration("bob@example.com")); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, customerRegistration("BOB@example.com")); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		reg  Registration
	}{
		{"empty email", Registration{Password: "password", Name: "A", Role: model.RoleCustomer}},
		{"malformed email", Registration{Email: "not-an-email", Password: "password", Name: "A", Role: model.RoleCustomer}},
		{"display name email", Registration{Email: "Alice <a@example.com>", Password: "password", Name: "A", Role: model.RoleCustomer}},
		{"empty name", Registration{Email: "a@example.com", Password: "password", Name: "  ", Role: model.RoleCustomer}},
		{"admin role", Registration{Email: "a@example.com", Password: "password", Name: "A", Role: model.RoleAdmin}},
		{"unknown role", Registration{Email: "a@example.com", Password: "password", Name: "A"}},
		{"out of range role", Registration{Email: "a@example.com", Password: "password", Name: "A", Role: model.Role(42)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
			if _, _, err := uc.Register(context.Background(), tc.reg); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthUseCaseRegisterPasswordPolicy(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", pkgAuth.ErrPasswordTooShort
	}}, testhelpers.StrategyStub{})
	if _, _, err := uc.Register(context.Background(), customerRegistration("a@example.com")); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, testhelpers.StrategyStub{})
	_, _, err := uc.Register(context.Background(), customerRegistration("a@example.com"))
	if err == nil || errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected plain hashing error, got %v", err)
	}
}

func TestAuthUseCaseRegisterRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := newAuthUseCase(repo)
	if _, _, err := uc.Register(context.Background(), customerRegistration("a@example.com")); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseRegisterIssueTokenError(t *testing.T) {
	strategy := testhelpers.StrategyStub{IssueFn: func(model.Identity) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), customerRegistration("a@example.com")); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	ctx := context.Background()
	registered, _, err := uc.Register(ctx, customerRegistration("carol@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	user, token, err := uc.Authenticate(ctx, " Carol@Example.com", "password")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("authenticated %s, registered %s", user.ID, registered.ID)
	}
	if token != "CUSTOMER:"+registered.ID {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateFailures(t *testing.T) {
	ctx := context.Background()

	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	if _, _, err := uc.Authenticate(ctx, "absent@example.com", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty email, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "a@example.com", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty password, got %v", err)
	}

	repo := testhelpers.NewUserRepositoryStub()
	uc = newAuthUseCase(repo)
	if _, _, err := uc.Register(ctx, customerRegistration("a@example.com")); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	repo.Err = fmt.Errorf("storage unavailable")
	if _, _, err := uc.Authenticate(ctx, "a@example.com", "password"); err == nil || err.Error() != "storage unavailable" {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateIssueTokenError(t *testing.T) {
	calls := 0
	strategy := testhelpers.StrategyStub{
		IssueFn: func(model.Identity) (string, error) {
			calls++
			if calls > 1 {
				return "", fmt.Errorf("issue error")
			}
			return "token", nil
		},
	}
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, strategy)
	if _, _, err := uc.Register(context.Background(), customerRegistration("a@example.com")); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "a@example.com", "password"); err == nil {
		t.Fatal("expected issue error on authenticate")
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	identity, err := uc.ParseToken("ADMIN:user-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if identity.UserID != "user-42" || identity.Role != model.RoleAdmin {
		t.Fatalf("unexpected identity %+v", identity)
	}

	if _, err := uc.ParseToken("bad-token"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseGetByID(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	user, _, err := uc.Register(context.Background(), customerRegistration("a@example.com"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	got, err := uc.GetByID(context.Background(), user.ID)
	if err != nil || got.Email != "a@example.com" {
		t.Fatalf("unexpected lookup result %+v, %v", got, err)
	}
	if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
