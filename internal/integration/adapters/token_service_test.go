package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

func signMemberToken(secret, issuer string, memberID int64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := MemberClaims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", memberID),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func TestTokenVerifier(t *testing.T) {
	const secret = "test-secret"
	verifier := NewTokenVerifier(secret, "member-service")

	valid, err := signMemberToken(secret, "member-service", 42, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	expired, _ := signMemberToken(secret, "member-service", 42, -time.Hour)
	otherSecret, _ := signMemberToken("another-secret", "member-service", 42, time.Hour)
	otherIssuer, _ := signMemberToken(secret, "someone-else", 42, time.Hour)
	noMember, _ := signMemberToken(secret, "member-service", 0, time.Hour)
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, MemberClaims{MemberID: 42}).SignedString([]byte(secret))

	t.Run("valid token", func(t *testing.T) {
		claims, err := verifier.ValidateAccessToken(context.Background(), valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.MemberID != 42 {
			t.Errorf("expected member 42, got %d", claims.MemberID)
		}
		if claims.ExpiresAt.Before(time.Now()) {
			t.Errorf("expected future expiry, got %s", claims.ExpiresAt)
		}
	})

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expired, want: domainerror.ErrInvalidToken},
		{name: "wrong secret", token: otherSecret, want: domainerror.ErrInvalidToken},
		{name: "wrong issuer", token: otherIssuer, want: domainerror.ErrInvalidToken},
		{name: "wrong algorithm", token: hs512, want: domainerror.ErrInvalidToken},
		{name: "garbage", token: "not-a-jwt", want: domainerror.ErrInvalidToken},
		{name: "missing member claim", token: noMember, want: domainerror.ErrMissingMemberClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.ValidateAccessToken(context.Background(), tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
