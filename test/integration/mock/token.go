package mock

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignMemberToken issues an HS256 access token shaped like the member service's.
func SignMemberToken(secret, issuer string, memberID int64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"member_id": memberID,
		"exp":       jwt.NewNumericDate(now.Add(ttl)),
		"iat":       jwt.NewNumericDate(now),
		"nbf":       jwt.NewNumericDate(now),
		"iss":       issuer,
		"sub":       strconv.FormatInt(memberID, 10),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
