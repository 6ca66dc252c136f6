package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackContext(t *testing.T, state string, cookies ...*http.Cookie) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state), nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req
	return c
}

func TestStateRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/google?sourceApp=proofkit", nil)

	state := generateState(c, "proofkit")
	require.NotEmpty(t, state)

	var stateCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == stateCookieName {
			stateCookie = cookie
		}
	}
	require.NotNil(t, stateCookie, "nonce must be pinned in a cookie")
	assert.True(t, stateCookie.HttpOnly)

	cb := callbackContext(t, state, &http.Cookie{Name: stateCookieName, Value: stateCookie.Value})
	sourceApp, ok := validateState(cb)
	require.True(t, ok)
	assert.Equal(t, "proofkit", sourceApp)
}

func TestValidateState_RejectsTampering(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/google", nil)

	state := generateState(c, "proofkit")
	require.NotEmpty(t, state)

	var nonce string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == stateCookieName {
			nonce = cookie.Value
		}
	}
	require.NotEmpty(t, nonce)

	t.Run("missing state", func(t *testing.T) {
		cb := callbackContext(t, "", &http.Cookie{Name: stateCookieName, Value: nonce})
		_, ok := validateState(cb)
		assert.False(t, ok)
	})

	t.Run("missing cookie", func(t *testing.T) {
		cb := callbackContext(t, state)
		_, ok := validateState(cb)
		assert.False(t, ok)
	})

	t.Run("nonce mismatch", func(t *testing.T) {
		cb := callbackContext(t, state, &http.Cookie{Name: stateCookieName, Value: "forged"})
		_, ok := validateState(cb)
		assert.False(t, ok)
	})

	t.Run("malformed state", func(t *testing.T) {
		cb := callbackContext(t, "no-dot-here", &http.Cookie{Name: stateCookieName, Value: nonce})
		_, ok := validateState(cb)
		assert.False(t, ok)
	})
}
