package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the minimal claim set carried by bearer tokens.
type Claims struct {
	AuthType string `json:"authType"`
	jwt.RegisteredClaims
}

// Issuer mints time-limited bearer tokens. The expiry is configured as
// a numeric magnitude plus a unit suffix ("15" + "m") concatenated into
// a duration string, mirroring how the deployment has always configured
// it.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

func NewIssuer(secret, expireMagnitude, expireUnit string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}

	expiry, err := time.ParseDuration(expireMagnitude + expireUnit)
	if err != nil {
		return nil, fmt.Errorf("token: invalid expiry %q%q: %w", expireMagnitude, expireUnit, err)
	}
	if expiry <= 0 {
		return nil, errors.New("token: expiry must be positive")
	}

	return &Issuer{secret: []byte(secret), expiry: expiry}, nil
}

// Issue signs a fresh token. Each call performs a new signing operation
// even for the same principal.
func (i *Issuer) Issue() (string, error) {
	now := time.Now()
	claims := Claims{
		AuthType: "User",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates a bearer token, returning its claims.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Expiry reports the configured token lifetime.
func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}
