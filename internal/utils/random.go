package utils

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// RandomString returns a URL-safe random string built from n random bytes.
func RandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RandomOTP returns a uniformly distributed 6-digit one-time code.
func RandomOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}
