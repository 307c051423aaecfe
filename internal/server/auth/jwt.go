// Package auth issues and verifies the signed bearer tokens handed to the
// front-end after registration or login. Tokens are stateless: validity is
// purely cryptographic and time-based, nothing is stored server-side.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuskit/campusauth/internal/common"
	"github.com/campuskit/campusauth/internal/server/models"
)

// Claims carries the standard registered claims plus the account role, which
// the front-end uses to pick the panel after login.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Issuer signs and verifies account tokens with a process-wide HMAC secret.
// The secret and validity window are injected at construction; there is no
// package-level state, so tests can run with isolated issuers.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

func NewIssuer(secret []byte, validity time.Duration) *Issuer {
	return &Issuer{secret: secret, validity: validity}
}

// Issue creates a signed HS256 token with subject accountID, issued-at now
// and expiry now+validity.
func (i *Issuer) Issue(accountID string, role models.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Role: role.String(),
	})

	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// It performs no store lookup; resolving the subject against the identity
// store is up to the caller. Expired tokens yield common.ErrTokenExpired,
// anything else that fails to parse yields common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
