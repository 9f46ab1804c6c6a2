package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims carried by a member access token.
type TokenClaims struct {
	MemberID  int64
	ExpiresAt time.Time
}

// TokenVerifier validates access tokens issued by the member service.
type TokenVerifier interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
