package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/credentials"
	"github.com/Certs365/auth-service/internal/auth/provider"
	"github.com/Certs365/auth-service/internal/auth/resolver"
	"github.com/Certs365/auth-service/internal/auth/token"
	"github.com/Certs365/auth-service/internal/session"
	"github.com/Certs365/auth-service/internal/store"
)

// defaultSourceApp labels signups that do not carry an explicit
// originating-app value.
const defaultSourceApp = "Certs365"

// HealthCheck reports whether a named dependency currently answers.
type HealthCheck func(ctx context.Context) bool

type Handler struct {
	providers    *provider.Registry
	sessionStore session.Store
	resolver     resolver.Resolver
	creds        *credentials.Service
	users        store.Users
	tokens       *token.Issuer

	dbHealthy    HealthCheck
	redisHealthy HealthCheck
}

func NewHandler(
	registry *provider.Registry,
	sessionStore session.Store,
	identityResolver resolver.Resolver,
	creds *credentials.Service,
	users store.Users,
	tokens *token.Issuer,
	dbHealthy HealthCheck,
	redisHealthy HealthCheck,
) *Handler {
	return &Handler{
		providers:    registry,
		sessionStore: sessionStore,
		resolver:     identityResolver,
		creds:        creds,
		users:        users,
		tokens:       tokens,
		dbHealthy:    dbHealthy,
		redisHealthy: redisHealthy,
	}
}

// RegisterRoutes wires up the public surface. The session-gated /home
// route is registered separately by the app so the gate can wrap it.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/signup", h.Signup)
	r.POST("/userSignup", h.UserSignup)
	r.GET("/userLogin", h.UserLogin)
	r.POST("/forgotPassword", h.ForgotPassword)
	r.POST("/resetPassword", h.ResetPassword)

	r.GET("/auth/:provider", h.OAuthLogin)
	r.GET("/auth/:provider/callback", h.OAuthCallback)

	r.POST("/logout", h.Logout)

	r.GET("/health", h.Health)
	r.POST("/health", h.Health)

	r.GET("/login", h.LoginEntry)
}
