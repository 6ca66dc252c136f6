package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Certs365/auth-service/internal/mail"
	"github.com/Certs365/auth-service/internal/store"
)

func newService() (*Service, *store.MemoryUsers, *store.MemoryAuthRecords) {
	users := store.NewMemoryUsers()
	auths := store.NewMemoryAuthRecords()
	return NewService(users, auths, mail.Noop{}, false), users, auths
}

func TestSignup_PersistsHashedPassword(t *testing.T) {
	s, users, auths := newService()
	ctx := context.Background()

	user, err := s.Signup(ctx, "jordan", "Jordan@Example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	assert.Equal(t, "jordan@example.com", user.Email, "emails are case-normalized")
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
	require.NoError(t, VerifyPassword(user.PasswordHash, "sup3rsecret"))

	// The authentication entry is created lazily alongside the user.
	rec, err := auths.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Active", rec.Status)
	assert.Zero(t, rec.OTP)

	assert.Equal(t, 1, users.Count())
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	s, users, _ := newService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "jordan", "dup@x.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "impostor", "dup@x.com", "otherpass", "certs365")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, 1, users.Count(), "no new row on duplicate signup")
}

func TestSignup_KeepsExistingAuthRecord(t *testing.T) {
	s, _, auths := newService()
	ctx := context.Background()

	require.NoError(t, auths.SetOTP(ctx, "jordan@example.com", 424242))

	_, err := s.Signup(ctx, "jordan", "jordan@example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	rec, err := auths.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, 424242, rec.OTP, "signup must not clobber a pre-existing entry")
}

func TestSignup_ShortPasswordRejected(t *testing.T) {
	s, users, _ := newService()

	_, err := s.Signup(context.Background(), "jordan", "jordan@example.com", "abc", "certs365")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Equal(t, 0, users.Count())
}

func TestLogin_DistinguishesFailureModes(t *testing.T) {
	s, users, _ := newService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "jordan", "jordan@example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	t.Run("unregistered email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "jordan@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("correct password", func(t *testing.T) {
		user, err := s.Login(ctx, "jordan@example.com", "sup3rsecret")
		require.NoError(t, err)
		assert.Equal(t, "jordan", user.Username)
	})

	t.Run("oauth account without password", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, &store.User{
			ThirdPartyID: "google-sub-9",
			Username:     "oauth-only",
			Email:        "oauth@example.com",
			SourceApp:    "certs365",
		}))

		_, err := s.Login(ctx, "oauth@example.com", "anything")
		assert.ErrorIs(t, err, ErrNoPassword)
	})
}

func TestForgotPassword_UpsertsOTP(t *testing.T) {
	s, _, auths := newService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "jordan", "jordan@example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	first, err := s.ForgotPassword(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, first, 100000)
	assert.LessOrEqual(t, first, 999999)

	rec, err := auths.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, rec.OTP)

	// A repeat request overwrites the old OTP in place.
	second, err := s.ForgotPassword(ctx, "jordan@example.com")
	require.NoError(t, err)

	rec, err = auths.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, second, rec.OTP)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	s, _, _ := newService()

	_, err := s.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPassword_RejectsReuse(t *testing.T) {
	s, _, _ := newService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "jordan", "jordan@example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	err = s.ResetPassword(ctx, "jordan@example.com", "sup3rsecret")
	assert.ErrorIs(t, err, ErrSamePassword)
}

func TestResetPassword_RotatesCredential(t *testing.T) {
	s, _, _ := newService()
	ctx := context.Background()

	_, err := s.Signup(ctx, "jordan", "jordan@example.com", "sup3rsecret", "certs365")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword(ctx, "jordan@example.com", "n3w-secret"))

	_, err = s.Login(ctx, "jordan@example.com", "sup3rsecret")
	assert.ErrorIs(t, err, ErrWrongPassword, "old password must stop verifying")

	user, err := s.Login(ctx, "jordan@example.com", "n3w-secret")
	require.NoError(t, err)
	assert.Equal(t, "jordan", user.Username)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	s, _, _ := newService()

	err := s.ResetPassword(context.Background(), "nobody@example.com", "n3w-secret")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
