package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	User         repository.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (LoginResult, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	users repository.UserRepository
	jwt   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

// Register creates an account with a company or applicant role and signs the
// caller in. Admin accounts are seeded, never self-registered.
func (u *Auth) Register(ctx context.Context, in RegisterInput) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return LoginResult{}, ErrInvalidInput
	}
	if in.Role != repository.RoleCompany && in.Role != repository.RoleApplicant {
		return LoginResult{}, ErrInvalidInput
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return LoginResult{}, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return LoginResult{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return LoginResult{}, ErrInternal
	}

	usr, err := u.users.Create(ctx, repository.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
	if err != nil {
		return LoginResult{}, ErrInternal
	}

	return u.signIn(usr)
}

func (u *Auth) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	return u.signIn(usr)
}

// Refresh rotates a token pair. Both tokens are reissued so a leaked refresh
// token stops working once its holder uses it.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", "", ErrRefreshTokenExpired
	case err != nil:
		return "", "", ErrInvalidRefreshToken
	case !u.jwt.IsRefreshToken(claims):
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	res, err := u.signIn(usr)
	if err != nil {
		return "", "", err
	}
	return res.AccessToken, res.RefreshToken, nil
}

func (u *Auth) signIn(usr repository.User) (LoginResult, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	return LoginResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}
