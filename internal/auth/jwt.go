package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Staff roles. STAFF may issue and return; AUDITOR is restricted to the
// read-only reporting surface.
const (
	RoleStaff   = "STAFF"
	RoleAuditor = "AUDITOR"
)

type Claims struct {
	Sub  string `json:"sub"`  // staff account id
	Role string `json:"role"` // STAFF/AUDITOR
	jwt.RegisteredClaims
}

func GenerateToken(secret, accountID, role string, ttl time.Duration) (string, error) {
	c := Claims{
		Sub:  accountID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
