// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bitbank/ledger/internal/application/adapter"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

// MemberClaims represents the claims of an access token issued by the member service.
type MemberClaims struct {
	MemberID int64 `json:"member_id"`
	jwt.RegisteredClaims
}

// tokenVerifier implements the adapter.TokenVerifier interface.
type tokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a new HS256 token verifier. An empty issuer accepts any issuer.
func NewTokenVerifier(secret, issuer string) adapter.TokenVerifier {
	return &tokenVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateAccessToken validates an access token and returns its claims.
func (v *tokenVerifier) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := v.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.MemberID <= 0 {
		return nil, domainerror.ErrMissingMemberClaim
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &adapter.TokenClaims{
		MemberID:  claims.MemberID,
		ExpiresAt: expiresAt,
	}, nil
}

// parseJWT parses and validates a JWT token.
func (v *tokenVerifier) parseJWT(tokenString string) (*MemberClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &MemberClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}
