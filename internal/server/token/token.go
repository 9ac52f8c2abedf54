// Package token issues and verifies the bearer credentials used by the API.
// A token carries the subject id and the role granted at issue time; role
// changes only take effect once the user logs in again.
package token

import (
	"time"

	"github.com/astucampus/lostandfound/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Expiry is the fixed lifetime of an issued token.
const Expiry = 72 * time.Hour

// Claims are the JWT claims embedded in a bearer token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// A Manager issues and verifies bearer tokens.
type Manager struct {
	signingKey []byte
}

// NewManager returns a new Manager with the given signing key.
func NewManager(signingKey []byte) Manager {
	return Manager{signingKey: signingKey}
}

// Issue returns a signed token for the given user.
func (m Manager) Issue(user *model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Expiry)),
		},
	})

	signed, err := token.SignedString(m.signingKey)
	return signed, errors.Wrap(err, "could not sign token")
}

// Verify parses the given token and returns its claims.
func (m Manager) Verify(raw string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not parse token")
	}
	return &claims, nil
}
