package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims represents the claims extracted from a validated access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the interface for access-token validation.
// Token issuance belongs to the external authentication service.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
