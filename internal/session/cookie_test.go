package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("cookie %s not set", CookieName)
	return nil
}

func TestSetAndClearCookie_AttributesMatch(t *testing.T) {
	opts := DefaultCookieOptions()

	setRec := httptest.NewRecorder()
	SetCookie(setRec, "sess-1", time.Now().Add(time.Hour), opts)
	set := findCookie(t, setRec)

	clearRec := httptest.NewRecorder()
	ClearCookie(clearRec, opts)
	cleared := findCookie(t, clearRec)

	require.Equal(t, "sess-1", set.Value)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)

	// Attribute mismatch between set and clear silently leaves the
	// cookie behind in many clients.
	assert.Equal(t, set.Path, cleared.Path)
	assert.Equal(t, set.Domain, cleared.Domain)
	assert.Equal(t, set.HttpOnly, cleared.HttpOnly)
	assert.Equal(t, set.Secure, cleared.Secure)
	assert.Equal(t, set.SameSite, cleared.SameSite)
}

func TestCookieDefaults(t *testing.T) {
	opts := DefaultCookieOptions()
	assert.Equal(t, "/", opts.Path)
	assert.True(t, opts.HttpOnly)
	assert.True(t, opts.Secure)
	assert.Equal(t, http.SameSiteLaxMode, opts.SameSite)
}

func TestNormalize_ForcesHostPrefixRequirements(t *testing.T) {
	opts := CookieOptions{Secure: true, SameSite: http.SameSiteLaxMode}.normalize()
	assert.Equal(t, "/", opts.Path)
	assert.True(t, opts.HttpOnly)
}

func TestGenerateID_UniqueAndOpaque(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 43) // 32 bytes base64url
}
