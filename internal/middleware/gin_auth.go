package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireSession adapts the net/http session gate to Gin. Auth
// decisions stay session-based and provider-agnostic.
func GinRequireSession(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		// Wrap Gin request with net/http auth middleware
		handler := auth.RequireSession(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already handled the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
