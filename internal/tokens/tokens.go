package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signature, malformed payload and expiry alike so
// callers cannot tell an attacker which check failed.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims carries only the subject identity. The role is deliberately not
// embedded: the authorization middleware re-reads it from the user store on
// every request, so role changes take effect immediately.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for subject, expiring ttl from now.
func Issue(secret []byte, subject string, ttl time.Duration) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies the signature and expiry and returns the claims. Any failure
// collapses into ErrInvalidToken. Extra parser options let tests pin the
// validation clock.
func Parse(tokenStr string, secret []byte, opts ...jwt.ParserOption) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
