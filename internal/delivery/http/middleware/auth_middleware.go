package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, appErr := m.authenticate(token)
		if appErr != nil {
			return appErr
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

// authenticate validates the raw token and rejects anything that is not an
// access token; refresh tokens are only accepted by the refresh endpoint.
func (m *AuthMiddleware) authenticate(token string) (jwt.Claims, *AppError) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
	}
	return claims, nil
}

// ActorFromCtx rebuilds the authenticated actor from the locals the auth
// middleware stored.
func ActorFromCtx(c fiber.Ctx) (usecase.Actor, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return usecase.Actor{}, false
	}
	role, _ := c.Locals(CtxRoleKey).(string)
	return usecase.Actor{ID: id, Role: role}, true
}

// BearerToken extracts the credential from an Authorization header,
// tolerating case differences in the scheme and surrounding whitespace.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
