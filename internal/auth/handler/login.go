package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/credentials"
	"github.com/Certs365/auth-service/internal/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin verifies local credentials and issues a bearer token.
// "User not found" and "wrong password" stay distinguishable in the
// message while sharing the 400 status.
func (h *Handler) UserLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Email == "" || req.Password == "" {
		respond(c, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	user, err := h.creds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrUserNotFound):
			respond(c, http.StatusBadRequest, "User not found / Invalid user", nil)
		case errors.Is(err, credentials.ErrNoPassword):
			respond(c, http.StatusBadRequest, "Invalid password format", nil)
		case errors.Is(err, credentials.ErrWrongPassword):
			respond(c, http.StatusBadRequest, "Wrong password, please check and try again", nil)
		default:
			logger.Error("login failed", map[string]any{"error": err.Error()})
			respond(c, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}

	jwToken, err := h.tokens.Issue()
	if err != nil {
		logger.Error("token issuance failed", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respond(c, http.StatusOK, "User logged in successfully", gin.H{
		"token":       jwToken,
		"email":       user.Email,
		"nickname":    user.Username,
		"displayName": user.Username,
	})
}
