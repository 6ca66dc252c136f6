package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/credentials"
	"github.com/Certs365/auth-service/internal/logger"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPassword generates and stores a fresh OTP for a registered
// email. Mail dispatch depends on configuration; the success response
// does not reveal the OTP.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Email == "" {
		respond(c, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	_, err := h.creds.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, credentials.ErrUserNotFound) {
			respond(c, http.StatusBadRequest, "User / Email does not exist", req.Email)
			return
		}
		logger.Error("forgot password failed", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Unable to reach the server, please try again", nil)
		return
	}

	respond(c, http.StatusOK, "User exists / Valid email", req.Email)
}

// ResetPassword overwrites the stored credential after the reuse check.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Email == "" || req.Password == "" {
		respond(c, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	err := h.creds.ResetPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrUserNotFound):
			respond(c, http.StatusBadRequest, "User / Email does not exist", req.Email)
		case errors.Is(err, credentials.ErrSamePassword):
			respond(c, http.StatusBadRequest, "Password cannot be the same as the previous one!", req.Email)
		case errors.Is(err, credentials.ErrPasswordTooShort):
			respond(c, http.StatusBadRequest, "Validation error", err.Error())
		default:
			logger.Error("reset password failed", map[string]any{"error": err.Error()})
			respond(c, http.StatusInternalServerError, "Unable to reach the server, please try again", nil)
		}
		return
	}

	respond(c, http.StatusOK, "User password reset successfully", req.Email)
}
