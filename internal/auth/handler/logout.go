package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/session"
)

// Logout is a compound teardown: destroy the server-side session first,
// then clear the cookie with the exact attributes it was set with. If
// the session delete fails the cookie stays, otherwise a client could
// look logged out while the session is still live.
func (h *Handler) Logout(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Error("session destruction failed", map[string]any{
				"error": err.Error(),
			})
			respond(c, http.StatusInternalServerError, "Session destruction failed", nil)
			return
		}
	}

	session.ClearCookie(c.Writer, session.DefaultCookieOptions())

	respond(c, http.StatusOK, "User logged out successfully.", nil)
}
