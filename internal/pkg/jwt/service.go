package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload carried by both token types. Role travels in the
// access token so authorization checks need no user lookup.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

// HMACService signs tokens with HS256. Access and refresh tokens use
// separate secrets so leaking one does not compromise the other.
type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
	}, s.accessSecret, s.accessExpiresIn)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
	}, s.refreshSecret, s.refreshExpiresIn)
}

// ValidateToken tries both secrets, so callers can hand it either token
// kind and branch on TokenType afterwards.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	expired := false
	for _, secret := range [][]byte{s.accessSecret, s.refreshSecret} {
		claims, err := s.parseWith(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, ErrTokenExpired) {
			expired = true
		}
	}
	if expired {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, ErrTokenInvalid
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

func (s *HMACService) sign(c Claims, secret []byte, expiresIn time.Duration) (string, error) {
	now := s.now().UTC()
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(expiresIn)),
		Subject:   c.UserID.String(),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) parseWith(tokenString string, secret []byte) (Claims, error) {
	if len(secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	var c Claims
	tok, err := parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
