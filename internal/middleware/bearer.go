package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/token"
)

// GinRequireBearer gates stateless API routes on a signed bearer token.
// Unlike the session gate this path is not browser-navigated, so
// failures answer 401 JSON instead of redirecting.
func GinRequireBearer(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "Unauthorized access. No token provided.")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c, "Unauthorized access. Invalid token format.")
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			unauthorized(c, "Unauthorized access. Invalid token.")
			return
		}

		c.Set("authType", claims.AuthType)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"success":    false,
		"message":    message,
		"details":    nil,
	})
}
