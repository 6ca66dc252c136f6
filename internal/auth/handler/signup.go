package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/credentials"
	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/store"
)

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	SourceApp string `json:"sourceApp"`
}

func signupDetails(u *store.User) gin.H {
	return gin.H{
		"id":        u.ID.Hex(),
		"username":  u.Username,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

// Signup registers a local account for an explicit originating app.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.SourceApp == "" {
		respond(c, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	user, err := h.creds.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.SourceApp)
	if err != nil {
		h.signupError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", signupDetails(user))
}

// UserSignup is the mobile-client variant: sourceApp is optional and
// defaults, and the success code has always been 200 here.
func (h *Handler) UserSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond(c, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	sourceApp := req.SourceApp
	if sourceApp == "" {
		sourceApp = defaultSourceApp
	}

	user, err := h.creds.Signup(c.Request.Context(), req.Username, req.Email, req.Password, sourceApp)
	if err != nil {
		h.signupError(c, err)
		return
	}

	respond(c, http.StatusOK, "User registered successfully", signupDetails(user))
}

func (h *Handler) signupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, credentials.ErrUserExists):
		respond(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, store.ErrDuplicate):
		respond(c, http.StatusBadRequest, "Email already in use", nil)
	case errors.Is(err, credentials.ErrPasswordTooShort):
		respond(c, http.StatusBadRequest, "Validation error", err.Error())
	default:
		logger.Error("signup failed", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
