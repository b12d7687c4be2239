package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func testJWT() jwt.Service {
	return jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func seedUser(t *testing.T, users *mockUserRepo, email, password, role string) repository.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u, err := users.Create(context.Background(), repository.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestAuthUsecase_Login(t *testing.T) {
	users := newMockUserRepo()
	seedUser(t, users, "a@example.com", "correct-horse", repository.RoleApplicant)
	uc := NewAuthUsecase(users, testJWT())

	res, err := uc.Login(context.Background(), "a@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("missing tokens: %+v", res)
	}
	if res.User.Role != repository.RoleApplicant {
		t.Fatalf("role = %q", res.User.Role)
	}

	if _, err := uc.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Login(context.Background(), "missing@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	users := newMockUserRepo()
	uc := NewAuthUsecase(users, testJWT())

	res, err := uc.Register(context.Background(), RegisterInput{
		Email:    "New@Example.com",
		Password: "long-enough-pass",
		Role:     repository.RoleCompany,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.User.Email != "new@example.com" {
		t.Fatalf("email not lowercased: %q", res.User.Email)
	}

	_, err = uc.Register(context.Background(), RegisterInput{
		Email: "new@example.com", Password: "long-enough-pass", Role: repository.RoleCompany,
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	_, err = uc.Register(context.Background(), RegisterInput{
		Email: "x@example.com", Password: "long-enough-pass", Role: repository.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("admin self-registration must fail, got %v", err)
	}

	_, err = uc.Register(context.Background(), RegisterInput{
		Email: "y@example.com", Password: "short", Role: repository.RoleApplicant,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short password must fail, got %v", err)
	}
}

func TestAuthUsecase_Refresh(t *testing.T) {
	users := newMockUserRepo()
	usr := seedUser(t, users, "a@example.com", "correct-horse", repository.RoleCompany)
	svc := testJWT()
	uc := NewAuthUsecase(users, svc)

	refresh, err := svc.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatal(err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || newRefresh == "" {
		t.Fatalf("missing tokens")
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.Role != repository.RoleCompany || claims.UserID != usr.ID {
		t.Fatalf("claims = %+v", claims)
	}

	// An access token is not accepted as a refresh token.
	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for garbage, got %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}
