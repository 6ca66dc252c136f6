package credentials

import (
	"context"
	"errors"

	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/mail"
	"github.com/Certs365/auth-service/internal/store"
	"github.com/Certs365/auth-service/internal/utils"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrNoPassword    = errors.New("account has no password set")
	ErrSamePassword  = errors.New("password cannot be the same as the previous one")
)

// Service implements the local-credential flows: signup, login,
// forgot-password and reset-password.
type Service struct {
	users  store.Users
	auth   store.AuthRecords
	mailer mail.Mailer

	// The OTP mail dispatch has historically been disabled in this
	// deployment; the OTP is still generated and stored either way.
	otpMailEnabled bool
}

func NewService(users store.Users, auth store.AuthRecords, mailer mail.Mailer, otpMailEnabled bool) *Service {
	return &Service{
		users:          users,
		auth:           auth,
		mailer:         mailer,
		otpMailEnabled: otpMailEnabled,
	}
}

// Signup registers a local account. The password is hashed before the
// user document is persisted, and an authentication record is lazily
// created for the email if one does not exist yet.
func (s *Service) Signup(ctx context.Context, username, email, password, sourceApp string) (*store.User, error) {

	// 1. Reject duplicate emails up front.
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 2. Hash and persist.
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		SourceApp:    sourceApp,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup can win the race between the lookup and
		// the insert; surface it the same way as the lookup hit.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// 3. Lazily create the authentication entry.
	if _, err := s.auth.FindByEmail(ctx, email); errors.Is(err, store.ErrNotFound) {
		rec := &store.AuthRecord{Email: email}
		if err := s.auth.Create(ctx, rec); err != nil && !errors.Is(err, store.ErrDuplicate) {
			return nil, err
		}
	}

	// Welcome mail rides the same dispatch switch as the OTP mail and
	// never fails the signup.
	if s.otpMailEnabled {
		if err := s.mailer.SendWelcome(ctx, user.Username, user.Email); err != nil {
			logger.Error("welcome mail dispatch failed", map[string]any{
				"email": user.Email,
				"error": err.Error(),
			})
		}
	}

	return user, nil
}

// Login verifies email/password and returns the matched user. Callers
// must map ErrUserNotFound and ErrWrongPassword to distinct messages.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		// OAuth-created account, no local credential to verify against.
		return nil, ErrNoPassword
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// ForgotPassword generates a fresh OTP for a registered email and
// upserts it into the authentication record. Repeat calls overwrite
// the previous OTP.
func (s *Service) ForgotPassword(ctx context.Context, email string) (int, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	otp, err := utils.RandomOTP()
	if err != nil {
		return 0, err
	}

	if err := s.auth.SetOTP(ctx, email, otp); err != nil {
		return 0, err
	}

	if s.otpMailEnabled {
		// Mail failure does not fail the request; the OTP is persisted.
		if err := s.mailer.SendOTP(ctx, user.Username, user.Email, otp); err != nil {
			logger.Error("otp mail dispatch failed", map[string]any{
				"email": user.Email,
				"error": err.Error(),
			})
		}
	}

	return otp, nil
}

// ResetPassword overwrites the stored hash with a freshly hashed
// password. Reusing the current password is rejected by comparing the
// candidate against the stored hash.
func (s *Service) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if user.PasswordHash != "" {
		if VerifyPassword(user.PasswordHash, password) == nil {
			return ErrSamePassword
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}
