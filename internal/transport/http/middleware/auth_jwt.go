package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-invoice-dashboard/internal/core/auth"
	resp "go-invoice-dashboard/internal/transport/http/response"
)

// AuthJWT gates the dashboard routes behind a valid session token.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
