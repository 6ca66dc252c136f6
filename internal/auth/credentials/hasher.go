package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the validation the user model has always
// enforced.
const MinPasswordLength = 6

// ErrPasswordTooShort is a client-data error, not a server fault.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}
