package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Actor is the authenticated caller, resolved from JWT claims by the
// delivery layer.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// RecommendationCache is the slice of the redis cache the usecases need;
// a nil implementation is a valid no-op.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCompany(ctx context.Context, companyID uuid.UUID) error
}
