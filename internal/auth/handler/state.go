package handler

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/utils"
)

const (
	stateCookieName = "__oauth_state"
	stateTTL        = 5 * time.Minute
)

// generateState builds the opaque state value for an OAuth round trip.
// The random nonce half is pinned in a short-lived cookie; sourceApp
// rides along in the second half so the callback can recover which
// client app initiated the flow.
func generateState(c *gin.Context, sourceApp string) string {
	nonce, err := utils.RandomString(32)
	if err != nil {
		return ""
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return nonce + "." + base64.RawURLEncoding.EncodeToString([]byte(sourceApp))
}

// validateState checks the callback's state against the nonce cookie
// and recovers the embedded sourceApp.
func validateState(c *gin.Context) (sourceApp string, ok bool) {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return "", false
	}

	nonce, encodedApp, found := strings.Cut(stateQuery, ".")
	if !found {
		return "", false
	}

	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != nonce {
		return "", false
	}

	app, err := base64.RawURLEncoding.DecodeString(encodedApp)
	if err != nil {
		return "", false
	}

	return string(app), true
}
