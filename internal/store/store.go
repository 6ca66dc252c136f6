package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no document matched the lookup key.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate means a unique index rejected the write. Two
	// concurrent creates for the same email race here; the loser must
	// treat this as a retryable conflict, not a crash.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Users is the only access path to user documents. All lookups are by
// unique key; emails are case-normalized before they reach the store.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByThirdPartyID(ctx context.Context, id string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// AuthRecords manages the email-keyed verification entries.
type AuthRecords interface {
	FindByEmail(ctx context.Context, email string) (*AuthRecord, error)
	Create(ctx context.Context, rec *AuthRecord) error
	// SetOTP overwrites the OTP for email, creating the record if absent.
	SetOTP(ctx context.Context, email string, otp int) error
}
