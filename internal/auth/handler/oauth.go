package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/resolver"
	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/session"
)

const sessionTTL = 24 * time.Hour

// OAuthLogin starts the provider flow. A sourceApp query parameter is
// carried through the opaque state value to the callback.
func (h *Handler) OAuthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respond(c, http.StatusBadRequest, "Unknown oauth provider", providerName)
		return
	}

	sourceApp := c.Query("sourceApp")
	if sourceApp == "" {
		sourceApp = defaultSourceApp
	}

	state := generateState(c, sourceApp)
	if state == "" {
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// OAuthCallback finishes the provider flow: exchange the code, resolve
// the account (with bounded retry for transient store failures), then
// establish the server-side session. This path is browser-navigated, so
// flow errors land on the login entry point rather than a JSON error.
func (h *Handler) OAuthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respond(c, http.StatusBadRequest, "Unknown oauth provider", providerName)
		return
	}

	sourceApp, ok := validateState(c)
	if !ok {
		logger.Warn("oauth callback with invalid state", map[string]any{
			"provider": providerName,
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", map[string]any{
			"provider": providerName,
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, getPKCEVerifier(c))
	if err != nil {
		logger.Error("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	resolved, err := resolver.ResolveWithRetry(c.Request.Context(), h.resolver, identity, sourceApp)
	if err != nil {
		logger.Error("account resolution failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to create session", nil)
		return
	}

	now := time.Now()
	sess := session.Session{
		SessionID: sessionID,
		UserID:    resolved.ID,
		SourceApp: sourceApp,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("failed to persist session", map[string]any{"error": err.Error()})
		respond(c, http.StatusInternalServerError, "Failed to persist session", nil)
		return
	}

	session.SetCookie(c.Writer, sessionID, sess.ExpiresAt, session.DefaultCookieOptions())

	logger.Info("login success", map[string]any{
		"provider":   providerName,
		"user_id":    resolved.ID,
		"source_app": sourceApp,
	})

	c.Redirect(http.StatusFound, "/home")
}
