package middleware

import (
	"net/http"

	"workspot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware only lets tokens carrying the admin role through.
func JWTAuthAdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			return
		}
		if claims.Role != utils.RoleAdmin {
			zap.L().Warn("Non-admin token on admin route",
				zap.String("subject", claims.Subject), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Unauthorized admin access"})
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set("isAdmin", true)
		c.Next()
	}
}
