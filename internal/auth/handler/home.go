package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/middleware"
	"github.com/Certs365/auth-service/internal/store"
)

// LoginEntry is where session-gated routes send unauthenticated
// browser navigation.
func (h *Handler) LoginEntry(c *gin.Context) {
	respond(c, http.StatusOK, "Login required", gin.H{
		"providers": []string{"google", "linkedin"},
	})
}

// Home serves the authenticated landing endpoint. A fresh bearer token
// is signed on every hit; issuance is idempotent in effect but never
// cached.
func (h *Handler) Home(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		// The session gate registers this route; reaching here without
		// a principal means the route was wired without it.
		c.Redirect(http.StatusFound, "/login")
		return
	}

	jwToken, err := h.tokens.Issue()
	if err != nil {
		logger.Error("token issuance failed", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	details := gin.H{"token": jwToken}

	user, err := h.users.FindByID(c.Request.Context(), principal.UserID)
	switch {
	case err == nil:
		details["user"] = gin.H{
			"id":        user.ID.Hex(),
			"username":  user.Username,
			"email":     user.Email,
			"sourceApp": user.SourceApp,
		}
	case errors.Is(err, store.ErrNotFound):
		// Session outlived the user document; still hand out the token.
	default:
		logger.Error("home user lookup failed", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respond(c, http.StatusOK, "Authenticated", details)
}
